// Package key provides key chord types and parsing for the binding system.
//
// This package defines the fundamental types for representing a physical
// input event as the window manager reports it:
//
//   - Modifier: A set of modifier keys (Shift, Control, Mod1/Alt, Mod4/Super, ...)
//   - Symbol: A canonical key symbol name ("Return", "h", "1", "period")
//   - Chord: A modifier set plus one symbol, the unit a binding is keyed on
//
// # Chord Specifications
//
// Chords can be written in several equivalent forms:
//
//   - Symbol only: "Return", "h", "F1"
//   - With modifiers: "super+shift+Return", "mod4+control+r"
//   - Modifier order is irrelevant: "shift+super+1" equals "super+shift+1"
//
// Modifiers are stored as a bit set, so two chords with the same modifiers
// in a different order compare and hash identically.
package key
