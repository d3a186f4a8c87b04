package app

import (
	"context"

	"github.com/dshills/tilekeys/internal/config"
	"github.com/dshills/tilekeys/internal/input/keymap"
	"github.com/dshills/tilekeys/internal/palette"
	"github.com/dshills/tilekeys/internal/script"
)

// Candidates assembles the full binding set described by cfg, in
// declaration order: default bindings, group bindings, scratchpad
// dropdowns, extra bindings from the config file, then script bindings.
//
// The set is not checked for conflicts; pass it to Registry.Reload or
// keymap.FindConflicts.
func Candidates(ctx context.Context, cfg *config.Config) ([]keymap.Binding, error) {
	opts, err := cfg.DefaultOptions()
	if err != nil {
		return nil, err
	}

	bindings := keymap.DefaultBindings(opts)

	groups, err := keymap.GenerateGroupBindings(cfg.GroupNames(), opts.Modifier)
	if err != nil {
		return nil, &OperationError{Op: "generate group bindings", Err: err}
	}
	bindings = append(bindings, groups...)

	dropdowns, err := cfg.DropdownBindings()
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, dropdowns...)

	extra, err := cfg.ExtraBindings()
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, extra...)

	if cfg.Script != "" {
		path := config.ExpandPath(cfg.Script)
		scripted, err := script.LoadFile(ctx, path, script.Env{
			Modifier: opts.Modifier,
			Groups:   cfg.GroupNames(),
			Terminal: opts.Terminal,
		})
		if err != nil {
			return nil, &OperationError{Op: "load script", Target: path, Err: err}
		}
		bindings = append(bindings, scripted...)
	}

	return bindings, nil
}

// LoadTheme reads the configured palette and derives the theme.
func LoadTheme(cfg *config.Config) (palette.Theme, error) {
	p, err := palette.Load(config.ExpandPath(cfg.Palette))
	if err != nil {
		return palette.Theme{}, err
	}
	return p.Theme(), nil
}
