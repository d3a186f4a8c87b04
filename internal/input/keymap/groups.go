package keymap

import (
	"fmt"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

// MaxDigitGroups is the number of groups the digit row can address.
const MaxDigitGroups = 9

// CategoryGroups is the display category of generated group bindings.
const CategoryGroups = "Groups"

// GenerateGroupBindings produces the switch and send bindings for an
// ordered list of group names.
//
// For the group at position i (1-indexed) it yields base+i bound to
// switching to the group, then base+shift+i bound to sending the focused
// window there. More than MaxDigitGroups names is a *RangeError and
// produces no bindings.
func GenerateGroupBindings(groups []string, base key.Modifier) ([]Binding, error) {
	if len(groups) > MaxDigitGroups {
		return nil, &RangeError{Count: len(groups), Max: MaxDigitGroups}
	}
	if base.HasShift() {
		return nil, fmt.Errorf("%w: base modifier %q already holds shift", ErrInvalidBinding, base)
	}

	bindings := make([]Binding, 0, 2*len(groups))
	for i, name := range groups {
		if name == "" {
			return nil, fmt.Errorf("%w: group %d has no name", ErrInvalidBinding, i+1)
		}
		digit, err := key.Digit(i + 1)
		if err != nil {
			return nil, err
		}

		switchChord := key.Chord{Modifiers: base, Symbol: digit}
		sendChord := key.Chord{Modifiers: base.With(key.ModShift), Symbol: digit}

		bindings = append(bindings,
			NewBinding(switchChord, action.SwitchGroup(name)).
				WithDescription("switch to group "+name).
				WithCategory(CategoryGroups),
			NewBinding(sendChord, action.SendToGroup(name)).
				WithDescription("send window to group "+name).
				WithCategory(CategoryGroups),
		)
	}
	return bindings, nil
}
