package keymap

import (
	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

// Display categories of the default bindings.
const (
	CategorySession  = "Session"
	CategoryFocus    = "Focus"
	CategoryMove     = "Move"
	CategoryResize   = "Resize"
	CategoryLayout   = "Layout"
	CategoryLaunch   = "Launch"
	CategoryDropdown = "Scratchpad"
)

// Stock command lines of the launch bindings.
const (
	DefaultTerminal = "alacritty -e fish"
	DefaultLauncher = "~/.config/rofi/bin/launcher_text"
)

// DefaultOptions holds the values the default bindings depend on.
type DefaultOptions struct {
	// Modifier is the base modifier of every default binding.
	Modifier key.Modifier

	// Terminal is the command line spawned by mod+Return.
	Terminal string

	// Launcher is the command line spawned by mod+shift+Return.
	Launcher string
}

// DefaultOptionsFor returns options with the stock terminal and launcher.
func DefaultOptionsFor(mod key.Modifier) DefaultOptions {
	return DefaultOptions{
		Modifier: mod,
		Terminal: DefaultTerminal,
		Launcher: DefaultLauncher,
	}
}

// defaultSpec is a static binding relative to the base modifier.
type defaultSpec struct {
	extra    key.Modifier
	symbol   string
	action   action.Action
	desc     string
	category string
}

// DefaultBindings returns the static bindings of the stock configuration.
// Spawn entries with an empty command line are left out.
func DefaultBindings(opts DefaultOptions) []Binding {
	specs := []defaultSpec{
		// Session
		{key.ModControl, "r", action.Host("restart"), "restart", CategorySession},
		{key.ModControl, "q", action.Host("shutdown"), "shutdown", CategorySession},
		{key.ModShift, "c", action.Host("window.kill"), "kill active window", CategorySession},

		// Launch
		{key.ModNone, key.SymReturn, action.Spawn(opts.Terminal), "terminal", CategoryLaunch},
		{key.ModShift, key.SymReturn, action.Spawn(opts.Launcher), "launcher", CategoryLaunch},

		// Layout
		{key.ModNone, key.SymTab, action.Host("next_layout"), "toggle between layouts", CategoryLayout},
		{key.ModNone, "o", action.Host("layout.maximize"), "maximize window", CategoryLayout},
		{key.ModNone, "n", action.Host("layout.normalize"), "normalize window sizes", CategoryLayout},
		{key.ModNone, "f", action.Host("window.toggle_fullscreen"), "toggle fullscreen", CategoryLayout},

		// Focus
		{key.ModNone, "h", action.Host("layout.left"), "focus to the left", CategoryFocus},
		{key.ModNone, "l", action.Host("layout.right"), "focus to the right", CategoryFocus},
		{key.ModNone, "j", action.Host("layout.down"), "focus down", CategoryFocus},
		{key.ModNone, "k", action.Host("layout.up"), "focus up", CategoryFocus},
		{key.ModNone, key.SymSpace, action.Host("layout.next"), "focus to the other window", CategoryFocus},
		{key.ModNone, key.SymPeriod, action.Host("next_screen"), "move focus to next monitor", CategoryFocus},
		{key.ModNone, key.SymComma, action.Host("prev_screen"), "move focus to prev monitor", CategoryFocus},

		// Move
		{key.ModShift, "h", action.Host("layout.shuffle_left"), "window to the left", CategoryMove},
		{key.ModShift, "l", action.Host("layout.shuffle_right"), "window to the right", CategoryMove},
		{key.ModShift, "j", action.Host("layout.shuffle_down"), "window down", CategoryMove},
		{key.ModShift, "k", action.Host("layout.shuffle_up"), "window up", CategoryMove},

		// Resize
		{key.ModControl, "h", action.Host("layout.grow_left"), "expand window to the left", CategoryResize},
		{key.ModControl, "l", action.Host("layout.grow_right"), "expand window to the right", CategoryResize},
		{key.ModControl, "j", action.Host("layout.grow_down"), "expand window down", CategoryResize},
		{key.ModControl, "k", action.Host("layout.grow_up"), "expand window up", CategoryResize},
		{key.ModNone, "i", action.Host("layout.grow"), "grow window", CategoryResize},
		{key.ModNone, "m", action.Host("layout.shrink"), "shrink window", CategoryResize},
	}

	bindings := make([]Binding, 0, len(specs))
	for _, s := range specs {
		if s.action.Kind == action.KindSpawn && s.action.Command == "" {
			continue
		}
		chord := key.Chord{Modifiers: opts.Modifier.With(s.extra), Symbol: s.symbol}
		bindings = append(bindings, NewBinding(chord, s.action).
			WithDescription(s.desc).
			WithCategory(s.category))
	}
	return bindings
}

// DropdownBinding returns the binding toggling a scratchpad dropdown on
// mod+symbol.
func DropdownBinding(mod key.Modifier, symbol, scratchpad, dropdown string) (Binding, error) {
	chord, err := key.NewChordWith(mod, symbol)
	if err != nil {
		return Binding{}, err
	}
	return NewBinding(chord, action.ToggleScratchpad(scratchpad, dropdown)).
		WithDescription("toggle " + dropdown + " dropdown").
		WithCategory(CategoryDropdown), nil
}
