package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/tilekeys/internal/config"
	"github.com/dshills/tilekeys/internal/input/key"
)

// Run dispatches chords from src until ctx is done or src is closed.
//
// Before the first chord it runs the autostart script and starts the
// reload triggers: SIGHUP and, when a config file is in use, changes to
// that file. A failed reload is logged and the previous binding set stays
// active. On return the application is closed; see Close for what happens
// to processes still running.
func (a *Application) Run(ctx context.Context, src <-chan key.Chord) error {
	if src == nil {
		return ErrNoSource
	}
	if a.running.Swap(true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)
	defer a.Close()

	if _, err := a.Autostart(ctx); err != nil {
		a.log.Warn().Err(err).Msg("autostart failed")
	}

	a.watchOnce.Do(func() {
		a.config.OnConfigChange(func(cfg *config.Config) {
			if err := a.apply(context.Background(), cfg); err != nil {
				a.log.Error().Err(err).Msg("reload after config change failed, keeping previous bindings")
			}
		})
		if err := a.config.Watch(); err != nil && !errors.Is(err, config.ErrNoConfigFile) {
			a.log.Warn().Err(err).Msg("config watch unavailable")
		}
	})

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	a.log.Info().Int("bindings", a.registry.Len()).Msg("dispatching")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hup:
			a.log.Info().Msg("SIGHUP received, reloading")
			if err := a.Reload(ctx); err != nil {
				a.log.Error().Err(err).Msg("reload failed, keeping previous bindings")
			}
		case chord, ok := <-src:
			if !ok {
				return nil
			}
			if _, err := a.dispatcher.Handle(ctx, chord); err != nil {
				a.log.Debug().Err(err).Msg("dispatch error")
			}
		}
	}
}
