package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptyChord      = errors.New("empty key chord")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrInvalidKey      = errors.New("invalid key symbol")
)

// Parse parses a chord specification string.
//
// Supported formats:
//   - Symbol only: "Return", "h", "1", "F4"
//   - With modifiers: "super+Return", "mod4+shift+c", "Ctrl+Alt+Delete"
//   - Literal plus as the key: "super++" (same as "super+plus")
//
// Modifier names are case-insensitive; the last component is the key.
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptyChord
	}

	// A trailing "++" means the key itself is "+".
	if strings.HasSuffix(spec, "++") {
		spec = strings.TrimSuffix(spec, "++") + "+plus"
	} else if spec == "+" {
		spec = "plus"
	}

	parts := strings.Split(spec, "+")
	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: missing key in %q", ErrInvalidKey, spec)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: %q in %q", ErrUnknownModifier, p, spec)
		}
		mods = mods.With(mod)
	}

	return NewChordWith(mods, keyPart)
}

// MustParse parses a chord specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key chord: " + spec + ": " + err.Error())
	}
	return c
}

// NormalizeSpec parses and re-formats a chord specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
