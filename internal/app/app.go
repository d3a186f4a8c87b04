// Package app wires configuration, the binding registry and the
// dispatcher together and manages the daemon lifecycle: startup, live
// reload and shutdown.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/tilekeys/internal/config"
	"github.com/dshills/tilekeys/internal/dispatch"
	"github.com/dshills/tilekeys/internal/input/keymap"
	"github.com/dshills/tilekeys/internal/logging"
	"github.com/dshills/tilekeys/internal/palette"
)

// ShutdownTimeout bounds how long spawned processes get to exit when
// Options.TerminateOnClose is set.
const ShutdownTimeout = 3 * time.Second

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means search the
	// default locations.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput defaults to os.Stderr.
	LogOutput io.Writer

	// SkipPalette skips loading the palette. Commands that only inspect
	// bindings set it.
	SkipPalette bool

	// Host overrides the host built from the configuration.
	Host dispatch.Host

	// Launcher overrides the process spawner used for spawn actions.
	Launcher dispatch.Launcher

	// TerminateOnClose makes Close terminate spawned processes that are
	// still running. By default they are released and keep running.
	TerminateOnClose bool
}

// Application is the central coordinator of tilekeys.
type Application struct {
	// rebuildMu serializes binding set rebuilds.
	rebuildMu sync.Mutex

	opts Options
	log  zerolog.Logger

	config     *config.Manager
	registry   *keymap.Registry
	spawner    *dispatch.Spawner
	host       dispatch.Host
	dispatcher *dispatch.Dispatcher
	metrics    *dispatch.Metrics

	themeMu sync.RWMutex
	theme   palette.Theme

	running   atomic.Bool
	watchOnce sync.Once
}

// New creates an Application: it loads the configuration, the palette
// and the binding set, and publishes the bindings. Any failure aborts
// startup before a registry exists.
func New(opts Options) (*Application, error) {
	a := &Application{
		opts:     opts,
		registry: keymap.NewRegistry(),
		metrics:  dispatch.NewMetrics(),
	}
	if err := a.bootstrap(context.Background()); err != nil {
		return nil, err
	}
	return a, nil
}

// bootstrap initializes the components in dependency order.
func (a *Application) bootstrap(ctx context.Context) error {
	var mgrOpts []config.Option
	if a.opts.ConfigPath != "" {
		mgrOpts = append(mgrOpts, config.WithFile(a.opts.ConfigPath))
	}
	mgr, err := config.NewManager(mgrOpts...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := mgr.Load(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.config = mgr
	cfg := mgr.Get()

	log, err := a.newLogger(cfg)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	a.log = log
	mgr.SetLogger(log)

	if !a.opts.SkipPalette {
		theme, err := LoadTheme(cfg)
		if err != nil {
			return &InitError{Component: "palette", Err: err}
		}
		a.setTheme(theme)
	}

	if err := a.rebuild(ctx, cfg); err != nil {
		return &InitError{Component: "bindings", Err: err}
	}

	a.spawner = dispatch.NewSpawner(dispatch.WithSpawnLogger(log))
	var launcher dispatch.Launcher = a.spawner
	if a.opts.Launcher != nil {
		launcher = a.opts.Launcher
	}

	a.host = a.opts.Host
	if a.host == nil {
		a.host, err = newHost(cfg, log, a.lookupDropdown)
		if err != nil {
			return &InitError{Component: "host", Err: err}
		}
	}

	a.dispatcher = dispatch.NewDispatcher(a.registry, dispatch.NewRouter(launcher, a.host),
		dispatch.WithLogger(log),
		dispatch.WithMetrics(a.metrics))
	return nil
}

func (a *Application) newLogger(cfg *config.Config) (zerolog.Logger, error) {
	levelName := cfg.Logging.Level
	if a.opts.LogLevel != "" {
		levelName = a.opts.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return zerolog.Logger{}, err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return zerolog.Logger{}, err
	}

	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = format
	lc.Output = a.opts.LogOutput
	return logging.New(lc), nil
}

func newHost(cfg *config.Config, log zerolog.Logger, dropdowns dispatch.DropdownLookup) (dispatch.Host, error) {
	if len(cfg.Host.Client) == 0 {
		return dispatch.NewLogHost(log, dropdowns), nil
	}
	return dispatch.NewExecHost(cfg.Host.Client,
		dispatch.WithHostLogger(log),
		dispatch.WithDropdowns(dropdowns))
}

// lookupDropdown resolves a dropdown against the current configuration.
func (a *Application) lookupDropdown(scratchpad, dropdown string) (dispatch.Dropdown, bool) {
	dd, ok := a.config.Get().LookupDropdown(scratchpad, dropdown)
	if !ok {
		return dispatch.Dropdown{}, false
	}
	return dispatch.Dropdown{Command: dd.Command, Opacity: dd.Opacity}, true
}

// rebuild assembles the binding set for cfg and publishes it. On error
// the registry keeps its current set.
func (a *Application) rebuild(ctx context.Context, cfg *config.Config) error {
	a.rebuildMu.Lock()
	defer a.rebuildMu.Unlock()

	candidates, err := Candidates(ctx, cfg)
	if err != nil {
		return err
	}
	if err := a.registry.Reload(candidates); err != nil {
		return err
	}

	a.log.Info().
		Int("bindings", a.registry.Len()).
		Uint64("generation", a.registry.Generation()).
		Msg("binding set published")
	return nil
}

// Reload re-reads the configuration, the palette and the script and
// swaps in the new theme and binding set. On any error the previous
// theme and set stay active.
func (a *Application) Reload(ctx context.Context) error {
	if err := a.config.Reload(); err != nil {
		return &OperationError{Op: "reload", Target: a.config.ConfigFileUsed(), Err: err}
	}
	return a.apply(ctx, a.config.Get())
}

// apply loads the palette and the binding set for cfg and publishes both,
// or neither.
func (a *Application) apply(ctx context.Context, cfg *config.Config) error {
	var theme palette.Theme
	if !a.opts.SkipPalette {
		t, err := LoadTheme(cfg)
		if err != nil {
			return &OperationError{Op: "reload", Target: "palette", Err: err}
		}
		theme = t
	}
	if err := a.rebuild(ctx, cfg); err != nil {
		return &OperationError{Op: "reload", Target: "bindings", Err: err}
	}
	if !a.opts.SkipPalette {
		a.setTheme(theme)
	}
	return nil
}

func (a *Application) setTheme(theme palette.Theme) {
	a.themeMu.Lock()
	a.theme = theme
	a.themeMu.Unlock()
}

// Autostart spawns the configured autostart script once.
// A missing script is skipped and reported as (nil, nil).
func (a *Application) Autostart(ctx context.Context) (*dispatch.Process, error) {
	cfg := a.config.Get()
	if cfg.Autostart == "" {
		return nil, nil
	}
	path := config.ExpandPath(cfg.Autostart)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.log.Debug().Str("path", path).Msg("no autostart script")
			return nil, nil
		}
		return nil, &OperationError{Op: "autostart", Target: path, Err: err}
	}

	proc, err := a.spawner.Spawn(ctx, shellQuote(path))
	if err != nil {
		return nil, &OperationError{Op: "autostart", Target: path, Err: err}
	}
	return proc, nil
}

// Close stops spawning. Processes still running are released, or
// terminated when Options.TerminateOnClose is set.
func (a *Application) Close() {
	if a.opts.TerminateOnClose {
		a.spawner.Shutdown(ShutdownTimeout)
		return
	}
	a.spawner.Release()
}

// Registry returns the binding registry.
func (a *Application) Registry() *keymap.Registry {
	return a.registry
}

// Dispatcher returns the dispatcher.
func (a *Application) Dispatcher() *dispatch.Dispatcher {
	return a.dispatcher
}

// Config returns a copy of the current configuration.
func (a *Application) Config() *config.Config {
	return a.config.Get()
}

// ConfigFile returns the configuration file in use, or "".
func (a *Application) ConfigFile() string {
	return a.config.ConfigFileUsed()
}

// Theme returns the palette-derived theme. It is zero when the palette
// was skipped.
func (a *Application) Theme() palette.Theme {
	a.themeMu.RLock()
	defer a.themeMu.RUnlock()
	return a.theme
}

// Metrics returns the dispatch metrics.
func (a *Application) Metrics() *dispatch.Metrics {
	return a.metrics
}

// Logger returns the application logger.
func (a *Application) Logger() zerolog.Logger {
	return a.log
}

// shellQuote quotes s for /bin/sh.
func shellQuote(s string) string {
	out := []byte{'\''}
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, `'\''`...)
			continue
		}
		out = append(out, s[i])
	}
	return string(append(out, '\''))
}
