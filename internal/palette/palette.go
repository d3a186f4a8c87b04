// Package palette loads the color palette generated by a wallpaper color
// tool (one color per line, e.g. ~/.cache/wal/colors) and derives the
// window-manager theme from it.
package palette

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Size is the number of colors a palette file must provide.
const Size = 15

// Palette is an ordered list of Size colors in "#rrggbb" form.
type Palette [Size]string

// Load reads the first Size lines of the file at path.
// Extra lines are ignored. A missing file, a short file or an unparsable
// color is a *ConfigError.
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses a palette from r. name is used in error messages.
func Read(r io.Reader, name string) (Palette, error) {
	var p Palette

	scanner := bufio.NewScanner(r)
	n := 0
	for n < Size && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		color, err := Normalize(line)
		if err != nil {
			return Palette{}, &ConfigError{Path: name, Line: n + 1, Err: err}
		}
		p[n] = color
		n++
	}
	if err := scanner.Err(); err != nil {
		return Palette{}, &ConfigError{Path: name, Err: err}
	}
	if n < Size {
		return Palette{}, &ConfigError{
			Path: name,
			Line: n,
			Err:  fmt.Errorf("%w: %d of %d colors", ErrTruncated, n, Size),
		}
	}
	return p, nil
}

// Normalize parses a hex color ("#rgb" or "#rrggbb", the leading '#'
// optional) and returns it as lowercase "#rrggbb".
func Normalize(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty line", ErrInvalidColor)
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// Color returns the color at index i, or "" when i is out of range.
func (p Palette) Color(i int) string {
	if i < 0 || i >= Size {
		return ""
	}
	return p[i]
}
