// Package keymap provides key binding management for the window manager.
//
// The keymap system owns the mapping between key chords and actions. It
// guarantees that no two bindings share a chord, resolves an input chord to
// at most one action, and replaces the whole binding set atomically on
// reload.
//
// # Key Concepts
//
// Binding: Maps a key chord to a data-only action with a description.
//
// Registry: Holds the active binding table and provides lookup.
//
// # Conflicts
//
// Registering a chord that is already bound is reported as a
// *ConflictError; the registry is never modified by a failed call. Bulk
// registration and reload are all-or-nothing: the candidate set is built
// and checked off to the side, then published with a single atomic store.
//
// # Group Bindings
//
// GenerateGroupBindings produces two bindings per group, "mod+N" to switch
// to group N and "mod+shift+N" to send the focused window there. Only nine
// groups fit on the digit row; asking for more is a *RangeError.
//
// # Serialization
//
// Encode and Decode move binding sets to and from TOML, JSON and YAML.
// Decoded bindings are not checked for conflicts until they are passed to
// Registry.Reload.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	candidates := keymap.DefaultBindings(keymap.DefaultOptionsFor(key.ModSuper))
//	generated, err := keymap.GenerateGroupBindings(names, key.ModSuper)
//	if err != nil {
//	    return err
//	}
//	if err := registry.Reload(append(candidates, generated...)); err != nil {
//	    return err
//	}
//
//	// Resolve an input event
//	if act, ok := registry.Resolve(key.MustParse("super+Return")); ok {
//	    // Hand act to the executor
//	}
package keymap
