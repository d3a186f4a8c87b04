// Package action defines the data-only actions a key binding triggers.
//
// An Action never executes anything itself. It names a side effect and
// carries its parameters so that bindings can be stored, compared,
// serialized and logged without running them. Execution belongs to the
// dispatch layer.
package action

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the variant of an Action.
type Kind uint8

const (
	// KindNone is the zero value and never valid in a binding.
	KindNone Kind = iota

	// KindSpawn starts an external process from a command line.
	KindSpawn

	// KindHost forwards an opaque operation to the window-manager host,
	// e.g. "layout.left" or "restart".
	KindHost

	// KindSwitchGroup shows a named group on the current screen.
	KindSwitchGroup

	// KindSendToGroup moves the focused window to a named group.
	KindSendToGroup

	// KindToggleScratchpad shows or hides a scratchpad dropdown.
	KindToggleScratchpad
)

// Errors returned by action parsing and validation.
var (
	ErrUnknownKind     = errors.New("unknown action kind")
	ErrMissingArgument = errors.New("missing action argument")
	ErrInvalidArgument = errors.New("invalid action argument")
)

var kindNames = map[Kind]string{
	KindNone:             "none",
	KindSpawn:            "spawn",
	KindHost:             "host",
	KindSwitchGroup:      "group.switch",
	KindSendToGroup:      "group.send",
	KindToggleScratchpad: "scratchpad.toggle",
}

var kindByName = map[string]Kind{
	"spawn":             KindSpawn,
	"host":              KindHost,
	"group.switch":      KindSwitchGroup,
	"group.send":        KindSendToGroup,
	"scratchpad.toggle": KindToggleScratchpad,
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Action describes a side effect to perform.
type Action struct {
	Kind Kind

	// Command is the command line for KindSpawn and the operation name
	// for KindHost.
	Command string

	// Group is the target group for KindSwitchGroup, KindSendToGroup
	// and the scratchpad group for KindToggleScratchpad.
	Group string

	// Dropdown names the dropdown inside a scratchpad.
	Dropdown string
}

// Spawn returns an action that starts a command line.
func Spawn(command string) Action {
	return Action{Kind: KindSpawn, Command: command}
}

// Host returns an action that forwards op to the window-manager host.
func Host(op string) Action {
	return Action{Kind: KindHost, Command: op}
}

// SwitchGroup returns an action that switches to a group.
func SwitchGroup(name string) Action {
	return Action{Kind: KindSwitchGroup, Group: name}
}

// SendToGroup returns an action that sends the focused window to a group.
func SendToGroup(name string) Action {
	return Action{Kind: KindSendToGroup, Group: name}
}

// ToggleScratchpad returns an action that toggles a scratchpad dropdown.
func ToggleScratchpad(group, dropdown string) Action {
	return Action{Kind: KindToggleScratchpad, Group: group, Dropdown: dropdown}
}

// IsZero reports whether the action is unset.
func (a Action) IsZero() bool {
	return a == Action{}
}

// Validate checks that the action carries the arguments its kind needs
// and that its text form parses back to the same action. Arguments must
// not carry surrounding whitespace, and scratchpad and dropdown names must
// not contain a slash.
func (a Action) Validate() error {
	switch a.Kind {
	case KindSpawn, KindHost:
		if strings.TrimSpace(a.Command) == "" {
			return fmt.Errorf("%w: %s needs a command", ErrMissingArgument, a.Kind)
		}
		return checkArgument(a.Kind, "command", a.Command)
	case KindSwitchGroup, KindSendToGroup:
		if strings.TrimSpace(a.Group) == "" {
			return fmt.Errorf("%w: %s needs a group", ErrMissingArgument, a.Kind)
		}
		return checkArgument(a.Kind, "group", a.Group)
	case KindToggleScratchpad:
		if strings.TrimSpace(a.Group) == "" || strings.TrimSpace(a.Dropdown) == "" {
			return fmt.Errorf("%w: %s needs scratchpad/dropdown", ErrMissingArgument, a.Kind)
		}
		if err := CheckScratchpadName(a.Group); err != nil {
			return fmt.Errorf("%w: %s scratchpad: %v", ErrInvalidArgument, a.Kind, err)
		}
		if err := CheckScratchpadName(a.Dropdown); err != nil {
			return fmt.Errorf("%w: %s dropdown: %v", ErrInvalidArgument, a.Kind, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, a.Kind)
	}
}

func checkArgument(kind Kind, what, value string) error {
	if strings.TrimSpace(value) != value {
		return fmt.Errorf("%w: %s %s %q has surrounding whitespace", ErrInvalidArgument, kind, what, value)
	}
	return nil
}

// CheckScratchpadName reports whether name can be used as a scratchpad
// or dropdown name inside a scratchpad.toggle action.
func CheckScratchpadName(name string) error {
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("name %q has surrounding whitespace", name)
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("name %q contains '/'", name)
	}
	return nil
}

// Argument returns the kind-specific parameter as a single string.
func (a Action) Argument() string {
	switch a.Kind {
	case KindSpawn, KindHost:
		return a.Command
	case KindSwitchGroup, KindSendToGroup:
		return a.Group
	case KindToggleScratchpad:
		return a.Group + "/" + a.Dropdown
	default:
		return ""
	}
}

// String returns the text form, e.g. "spawn:alacritty -e fish" or
// "group.switch:Side Dev". The result parses back with Parse.
func (a Action) String() string {
	return a.Kind.String() + ":" + a.Argument()
}
