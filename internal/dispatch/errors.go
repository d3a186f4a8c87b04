package dispatch

import (
	"errors"
	"fmt"

	"github.com/dshills/tilekeys/internal/action"
)

// Dispatch errors.
var (
	// ErrShutdown indicates the spawner no longer starts processes.
	ErrShutdown = errors.New("dispatch: spawner is shut down")

	// ErrProcessLimit indicates too many tracked processes.
	ErrProcessLimit = errors.New("dispatch: process limit reached")

	// ErrUnsupported indicates an action kind no executor handles.
	ErrUnsupported = errors.New("dispatch: unsupported action")

	// ErrPanic indicates an executor panicked.
	ErrPanic = errors.New("dispatch: executor panic")
)

// ExecError reports an action that failed to execute.
type ExecError struct {
	// Action is the action that failed.
	Action action.Action

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("executing %s: %v", e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
