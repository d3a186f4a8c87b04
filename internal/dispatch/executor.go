package dispatch

import (
	"context"
	"fmt"

	"github.com/dshills/tilekeys/internal/action"
)

// Executor performs an action.
type Executor interface {
	Execute(ctx context.Context, act action.Action) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, act action.Action) error

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, act action.Action) error {
	return f(ctx, act)
}

// Launcher starts command lines.
type Launcher interface {
	Spawn(ctx context.Context, commandLine string) (*Process, error)
}

// Router is the stock Executor: spawn actions go to the launcher, all
// other kinds to the host.
type Router struct {
	launcher Launcher
	host     Host
}

// NewRouter creates a router.
func NewRouter(launcher Launcher, host Host) *Router {
	return &Router{launcher: launcher, host: host}
}

// Execute implements Executor.
func (r *Router) Execute(ctx context.Context, act action.Action) error {
	if err := act.Validate(); err != nil {
		return err
	}

	switch act.Kind {
	case action.KindSpawn:
		if r.launcher == nil {
			return fmt.Errorf("%w: no launcher for %s", ErrUnsupported, act)
		}
		_, err := r.launcher.Spawn(ctx, act.Command)
		return err
	case action.KindHost, action.KindSwitchGroup, action.KindSendToGroup, action.KindToggleScratchpad:
		if r.host == nil {
			return fmt.Errorf("%w: no host for %s", ErrUnsupported, act)
		}
		return r.forward(ctx, act)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, act)
	}
}

func (r *Router) forward(ctx context.Context, act action.Action) error {
	switch act.Kind {
	case action.KindHost:
		return r.host.Forward(ctx, act.Command)
	case action.KindSwitchGroup:
		return r.host.SwitchGroup(ctx, act.Group)
	case action.KindSendToGroup:
		return r.host.SendToGroup(ctx, act.Group)
	default:
		return r.host.ToggleScratchpad(ctx, act.Group, act.Dropdown)
	}
}
