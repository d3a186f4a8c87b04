package palette

import (
	"errors"
	"fmt"
)

// Errors wrapped by ConfigError.
var (
	// ErrTruncated indicates the palette file has fewer than Size lines.
	ErrTruncated = errors.New("palette file truncated")

	// ErrInvalidColor indicates a line that is not a parsable color.
	ErrInvalidColor = errors.New("invalid palette color")
)

// ConfigError reports a palette file that cannot be used.
type ConfigError struct {
	// Path is the palette file.
	Path string

	// Line is the 1-based line number, or 0 when the error is not tied to
	// one line.
	Line int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("palette %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("palette %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
