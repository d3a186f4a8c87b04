package key

import (
	"fmt"
	"strings"
)

// Modifier represents a set of keyboard modifier keys.
// The bit layout follows the X11 core modifier masks.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModLock indicates Caps Lock.
	ModLock

	// ModControl indicates the Control key.
	ModControl

	// ModAlt indicates Mod1, usually Alt.
	ModAlt

	// ModMod2 indicates Mod2, usually Num Lock.
	ModMod2

	// ModMod3 indicates Mod3, usually unassigned or Hyper.
	ModMod3

	// ModSuper indicates Mod4, the Super/Windows key.
	ModSuper

	// ModMod5 indicates Mod5, usually AltGr.
	ModMod5
)

// modifierOrder is the canonical order used when formatting a set.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModSuper, "super"},
	{ModControl, "control"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModMod3, "mod3"},
	{ModMod5, "mod5"},
	{ModMod2, "mod2"},
	{ModLock, "lock"},
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasControl returns true if Control is pressed.
func (m Modifier) HasControl() bool {
	return m.Has(ModControl)
}

// HasAlt returns true if Alt (Mod1) is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasSuper returns true if Super (Mod4) is pressed.
func (m Modifier) HasSuper() bool {
	return m.Has(ModSuper)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Names returns the canonical modifier names in display order.
func (m Modifier) Names() []string {
	var names []string
	for _, entry := range modifierOrder {
		if m.Has(entry.mod) {
			names = append(names, entry.name)
		}
	}
	return names
}

// String returns a representation like "super+shift".
func (m Modifier) String() string {
	return strings.Join(m.Names(), "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"shift":   ModShift,
	"s":       ModShift,
	"lock":    ModLock,
	"control": ModControl,
	"ctrl":    ModControl,
	"c":       ModControl,
	"mod1":    ModAlt,
	"alt":     ModAlt,
	"a":       ModAlt,
	"meta":    ModAlt,
	"option":  ModAlt,
	"mod2":    ModMod2,
	"mod3":    ModMod3,
	"hyper":   ModMod3,
	"mod4":    ModSuper,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
	"logo":    ModSuper,
	"mod5":    ModMod5,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers combines a list of modifier names into a set.
// Duplicates are absorbed; an unknown name is an error.
func ParseModifiers(names []string) (Modifier, error) {
	var result Modifier
	for _, name := range names {
		mod := ModifierFromName(name)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
		}
		result = result.With(mod)
	}
	return result, nil
}
