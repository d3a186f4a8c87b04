package config

import (
	"errors"
	"fmt"
)

// Errors wrapped by ValidationError.
var (
	// ErrEmptyValue indicates a required value is missing.
	ErrEmptyValue = errors.New("value is empty")

	// ErrDuplicate indicates a name used twice.
	ErrDuplicate = errors.New("duplicate name")

	// ErrOutOfRange indicates a value outside its accepted set.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidName indicates a name that cannot appear in an action.
	ErrInvalidName = errors.New("invalid name")
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	// Field is the offending key path.
	Field string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseError represents a configuration file that could not be read or
// decoded.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
