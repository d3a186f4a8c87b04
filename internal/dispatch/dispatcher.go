package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
	"github.com/dshills/tilekeys/internal/logging"
)

// Resolver looks up the action bound to a chord.
type Resolver interface {
	Resolve(chord key.Chord) (action.Action, bool)
}

// Dispatcher resolves chords and executes the bound actions.
type Dispatcher struct {
	resolver Resolver
	executor Executor
	metrics  *Metrics
	log      zerolog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithMetrics records dispatch statistics into m.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(resolver Resolver, executor Executor, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		executor: executor,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = logging.WithComponent(d.log, "dispatch")
	return d
}

// Handle resolves chord and executes its action.
// It reports false with a nil error when the chord is unbound.
func (d *Dispatcher) Handle(ctx context.Context, chord key.Chord) (bool, error) {
	act, ok := d.resolver.Resolve(chord)
	if !ok {
		d.log.Debug().Str("chord", chord.String()).Msg("unbound chord")
		if d.metrics != nil {
			d.metrics.RecordUnbound()
		}
		return false, nil
	}

	start := time.Now()
	err := d.execute(ctx, act)
	elapsed := time.Since(start)

	if d.metrics != nil {
		d.metrics.RecordDispatch(act.Kind, elapsed, err)
	}

	if err != nil {
		d.log.Warn().Err(err).Str("chord", chord.String()).Str("action", act.String()).Msg("action failed")
		return true, &ExecError{Action: act, Err: err}
	}
	d.log.Debug().
		Str("chord", chord.String()).
		Str("action", act.String()).
		Dur("elapsed", elapsed).
		Msg("action executed")
	return true, nil
}

// HandleSpec parses a chord specification and handles it.
func (d *Dispatcher) HandleSpec(ctx context.Context, spec string) (bool, error) {
	chord, err := key.Parse(spec)
	if err != nil {
		return false, err
	}
	return d.Handle(ctx, chord)
}

// execute runs the executor, converting a panic into ErrPanic.
func (d *Dispatcher) execute(ctx context.Context, act action.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return d.executor.Execute(ctx, act)
}
