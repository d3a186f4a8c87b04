package key

import (
	"fmt"
	"strings"
)

// Chord is a modifier set combined with one key symbol.
//
// Chord is a comparable value: two chords are equal exactly when their
// modifier sets and symbols match, regardless of the order the modifiers
// were written in. It can be used directly as a map key.
type Chord struct {
	// Modifiers contains the held modifier keys.
	Modifiers Modifier

	// Symbol is the canonical key symbol.
	Symbol string
}

// NewChord builds a chord from modifier names and a key symbol, in the
// shape window-manager configs usually declare them:
//
//	NewChord([]string{"mod4", "shift"}, "Return")
func NewChord(modifiers []string, symbol string) (Chord, error) {
	mods, err := ParseModifiers(modifiers)
	if err != nil {
		return Chord{}, err
	}
	return NewChordWith(mods, symbol)
}

// NewChordWith builds a chord from an already combined modifier set.
func NewChordWith(mods Modifier, symbol string) (Chord, error) {
	sym, shifted, err := CanonicalSymbol(symbol)
	if err != nil {
		return Chord{}, err
	}
	if shifted {
		mods = mods.With(ModShift)
	}
	return Chord{Modifiers: mods, Symbol: sym}, nil
}

// MustChord is like NewChord but panics on error.
// Use only for known-valid chords in initialization code.
func MustChord(modifiers []string, symbol string) Chord {
	c, err := NewChord(modifiers, symbol)
	if err != nil {
		panic("invalid chord: " + strings.Join(modifiers, "+") + "+" + symbol + ": " + err.Error())
	}
	return c
}

// IsZero reports whether the chord has no symbol.
func (c Chord) IsZero() bool {
	return c.Symbol == ""
}

// Equals returns true if two chords represent the same key press.
func (c Chord) Equals(other Chord) bool {
	return c == other
}

// With returns a copy with the specified modifier added.
func (c Chord) With(mod Modifier) Chord {
	c.Modifiers = c.Modifiers.With(mod)
	return c
}

// String returns the canonical specification, e.g. "super+shift+Return".
// The result parses back to an equal chord.
func (c Chord) String() string {
	if c.Modifiers.IsEmpty() {
		return c.Symbol
	}
	return c.Modifiers.String() + "+" + c.Symbol
}

// GoString implements fmt.GoStringer for debugging.
func (c Chord) GoString() string {
	return fmt.Sprintf("Chord{Modifiers: %q, Symbol: %q}", c.Modifiers.String(), c.Symbol)
}

// MarshalText implements encoding.TextMarshaler.
func (c Chord) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, ErrEmptyChord
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Chord) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
