package config

import (
	"fmt"
	"strings"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
	"github.com/dshills/tilekeys/internal/input/keymap"
)

// Config is the complete tilekeys configuration.
type Config struct {
	Modifier    string          `mapstructure:"modifier"`
	Terminal    string          `mapstructure:"terminal"`
	Launcher    string          `mapstructure:"launcher"`
	Autostart   string          `mapstructure:"autostart"`
	Palette     string          `mapstructure:"palette"`
	Script      string          `mapstructure:"script"`
	Groups      []Group         `mapstructure:"groups"`
	Scratchpads []Scratchpad    `mapstructure:"scratchpads"`
	Bindings    []BindingConfig `mapstructure:"bindings"`
	Host        HostConfig      `mapstructure:"host"`
	Logging     LoggingConfig   `mapstructure:"logging"`
}

// Group is a workspace with its preferred layout.
type Group struct {
	Name   string `mapstructure:"name"`
	Layout string `mapstructure:"layout"`
}

// Scratchpad is a hidden group holding dropdown windows.
type Scratchpad struct {
	Name      string     `mapstructure:"name"`
	Dropdowns []Dropdown `mapstructure:"dropdowns"`
}

// Dropdown is a window toggled in and out of view from a scratchpad.
type Dropdown struct {
	Name string `mapstructure:"name"`

	// Command defaults to the terminal when empty.
	Command string  `mapstructure:"command"`
	Opacity float64 `mapstructure:"opacity"`

	// Key is the symbol toggling the dropdown together with the base
	// modifier. Empty means no binding.
	Key string `mapstructure:"key"`
}

// BindingConfig is an extra static binding.
type BindingConfig struct {
	Keys        string `mapstructure:"keys"`
	Action      string `mapstructure:"action"`
	Description string `mapstructure:"description"`
	Category    string `mapstructure:"category"`
}

// HostConfig selects how host operations are delivered.
type HostConfig struct {
	// Client is an argv prefix; the operation and its arguments are
	// appended. Empty means operations are only logged.
	Client []string `mapstructure:"client"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	layouts := []string{"monadtall", "monadtall", "monadtall", "monadtall", "monadtall", "monadtall", "monadtall", "monadtall", "zoomy"}
	names := []string{"Internet", "Dev", "Side Dev", "System", "Documentation", "Music", "Video", "Files", "Nothing"}
	groups := make([]Group, len(names))
	for i := range names {
		groups[i] = Group{Name: names[i], Layout: layouts[i]}
	}

	return &Config{
		Modifier:  "mod4",
		Terminal:  keymap.DefaultTerminal,
		Launcher:  keymap.DefaultLauncher,
		Autostart: "~/.config/qtile/scripts/autostart.sh",
		Palette:   "~/.cache/wal/colors",
		Groups:    groups,
		Scratchpads: []Scratchpad{{
			Name: "scratchpad",
			Dropdowns: []Dropdown{{
				Name:    "term",
				Opacity: 0.9,
				Key:     "d",
			}},
		}},
		Host: HostConfig{Client: []string{}},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// BaseModifier parses the configured modifier.
func (c *Config) BaseModifier() (key.Modifier, error) {
	mod, err := key.ParseModifiers(strings.Split(c.Modifier, "+"))
	if err != nil {
		return key.ModNone, &ValidationError{Field: "modifier", Err: err}
	}
	if mod.IsEmpty() {
		return key.ModNone, &ValidationError{Field: "modifier", Err: ErrEmptyValue}
	}
	return mod, nil
}

// GroupNames returns the group names in order.
func (c *Config) GroupNames() []string {
	names := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		names[i] = g.Name
	}
	return names
}

// DefaultOptions returns the inputs of keymap.DefaultBindings.
// Terminal and launcher paths are expanded.
func (c *Config) DefaultOptions() (keymap.DefaultOptions, error) {
	mod, err := c.BaseModifier()
	if err != nil {
		return keymap.DefaultOptions{}, err
	}
	return keymap.DefaultOptions{
		Modifier: mod,
		Terminal: ExpandPath(c.Terminal),
		Launcher: ExpandPath(c.Launcher),
	}, nil
}

// DropdownBindings returns the toggle binding of every dropdown that
// declares a key.
func (c *Config) DropdownBindings() ([]keymap.Binding, error) {
	mod, err := c.BaseModifier()
	if err != nil {
		return nil, err
	}
	var out []keymap.Binding
	for _, sp := range c.Scratchpads {
		for _, dd := range sp.Dropdowns {
			if dd.Key == "" {
				continue
			}
			b, err := keymap.DropdownBinding(mod, dd.Key, sp.Name, dd.Name)
			if err != nil {
				return nil, &ValidationError{Field: fmt.Sprintf("scratchpads.%s.dropdowns.%s.key", sp.Name, dd.Name), Err: err}
			}
			out = append(out, b)
		}
	}
	return out, nil
}

// ExtraBindings parses the [[bindings]] tables.
func (c *Config) ExtraBindings() ([]keymap.Binding, error) {
	out := make([]keymap.Binding, 0, len(c.Bindings))
	for i, bc := range c.Bindings {
		chord, err := key.Parse(bc.Keys)
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("bindings[%d].keys", i), Err: err}
		}
		act, err := action.Parse(bc.Action)
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("bindings[%d].action", i), Err: err}
		}
		category := bc.Category
		if category == "" {
			category = "Custom"
		}
		out = append(out, keymap.NewBinding(chord, act).
			WithDescription(bc.Description).
			WithCategory(category))
	}
	return out, nil
}

// LookupDropdown returns a dropdown with its command expanded, falling
// back to the terminal when it has none.
func (c *Config) LookupDropdown(scratchpad, dropdown string) (Dropdown, bool) {
	for _, sp := range c.Scratchpads {
		if sp.Name != scratchpad {
			continue
		}
		for _, dd := range sp.Dropdowns {
			if dd.Name != dropdown {
				continue
			}
			if dd.Command == "" {
				dd.Command = c.Terminal
			}
			dd.Command = ExpandPath(dd.Command)
			return dd, true
		}
	}
	return Dropdown{}, false
}

// normalize trims values and fills dropdown defaults.
func normalize(c *Config) {
	c.Modifier = strings.TrimSpace(c.Modifier)
	c.Terminal = strings.TrimSpace(c.Terminal)
	c.Launcher = strings.TrimSpace(c.Launcher)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	for i := range c.Groups {
		c.Groups[i].Name = strings.TrimSpace(c.Groups[i].Name)
	}
	for i := range c.Scratchpads {
		for j := range c.Scratchpads[i].Dropdowns {
			dd := &c.Scratchpads[i].Dropdowns[j]
			if dd.Opacity == 0 {
				dd.Opacity = 1
			}
		}
	}
}

// Validate checks values that would make the binding set unbuildable.
func (c *Config) Validate() error {
	if _, err := c.BaseModifier(); err != nil {
		return err
	}
	if len(c.Groups) > keymap.MaxDigitGroups {
		return &ValidationError{Field: "groups", Err: &keymap.RangeError{Count: len(c.Groups), Max: keymap.MaxDigitGroups}}
	}

	seen := make(map[string]bool, len(c.Groups)+len(c.Scratchpads))
	for i, g := range c.Groups {
		if g.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("groups[%d].name", i), Err: ErrEmptyValue}
		}
		if seen[g.Name] {
			return &ValidationError{Field: fmt.Sprintf("groups[%d].name", i), Err: fmt.Errorf("%w: %q", ErrDuplicate, g.Name)}
		}
		seen[g.Name] = true
	}
	for i, sp := range c.Scratchpads {
		if sp.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("scratchpads[%d].name", i), Err: ErrEmptyValue}
		}
		if seen[sp.Name] {
			return &ValidationError{Field: fmt.Sprintf("scratchpads[%d].name", i), Err: fmt.Errorf("%w: %q", ErrDuplicate, sp.Name)}
		}
		if err := action.CheckScratchpadName(sp.Name); err != nil {
			return &ValidationError{Field: fmt.Sprintf("scratchpads[%d].name", i), Err: fmt.Errorf("%w: %v", ErrInvalidName, err)}
		}
		seen[sp.Name] = true
		for j, dd := range sp.Dropdowns {
			if dd.Name == "" {
				return &ValidationError{Field: fmt.Sprintf("scratchpads[%d].dropdowns[%d].name", i, j), Err: ErrEmptyValue}
			}
			if err := action.CheckScratchpadName(dd.Name); err != nil {
				return &ValidationError{Field: fmt.Sprintf("scratchpads[%d].dropdowns[%d].name", i, j), Err: fmt.Errorf("%w: %v", ErrInvalidName, err)}
			}
			if dd.Opacity < 0 || dd.Opacity > 1 {
				return &ValidationError{Field: fmt.Sprintf("scratchpads[%d].dropdowns[%d].opacity", i, j), Err: fmt.Errorf("%w: %v not in [0,1]", ErrOutOfRange, dd.Opacity)}
			}
		}
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return &ValidationError{Field: "logging.format", Err: fmt.Errorf("%w: %q", ErrOutOfRange, c.Logging.Format)}
	}
	return nil
}
