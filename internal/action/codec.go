package action

import (
	"fmt"
	"strings"
)

// Parse parses the text form produced by Action.String.
//
//	spawn:alacritty -e fish
//	host:layout.left
//	group.switch:Side Dev
//	group.send:Dev
//	scratchpad.toggle:scratchpad/term
//
// The kind is everything before the first colon; the argument is the
// rest, kept verbatim apart from surrounding whitespace.
func Parse(text string) (Action, error) {
	name, arg, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return Action{}, fmt.Errorf("%w: %q has no kind prefix", ErrUnknownKind, text)
	}

	kind, known := kindByName[strings.ToLower(strings.TrimSpace(name))]
	if !known {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	arg = strings.TrimSpace(arg)

	var a Action
	switch kind {
	case KindSpawn:
		a = Spawn(arg)
	case KindHost:
		a = Host(arg)
	case KindSwitchGroup:
		a = SwitchGroup(arg)
	case KindSendToGroup:
		a = SendToGroup(arg)
	case KindToggleScratchpad:
		group, dropdown, _ := strings.Cut(arg, "/")
		a = ToggleScratchpad(group, dropdown)
	}

	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// MustParse parses an action and panics on error.
// Use only for known-valid actions in initialization code.
func MustParse(text string) Action {
	a, err := Parse(text)
	if err != nil {
		panic("invalid action: " + text + ": " + err.Error())
	}
	return a
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
