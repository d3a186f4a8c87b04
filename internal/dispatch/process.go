package dispatch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// ProcessState is the lifecycle state of a spawned process.
type ProcessState int

const (
	// StateRunning indicates the process is running.
	StateRunning ProcessState = iota
	// StateExited indicates the process exited on its own.
	StateExited
	// StateKilled indicates the process was ended by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s ProcessState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Process is a command line started by a Spawner.
// It is safe for concurrent use.
type Process struct {
	// ID is the unique identifier assigned at spawn.
	ID string

	// CommandLine is the spawned command line.
	CommandLine string

	// Cmd is the underlying exec.Cmd.
	Cmd *exec.Cmd

	// Started is the time the process was started.
	Started time.Time

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error
}

func newProcess(id, commandLine string, cmd *exec.Cmd) *Process {
	p := &Process{
		ID:          id,
		CommandLine: commandLine,
		Cmd:         cmd,
		done:        make(chan struct{}),
	}
	p.exitCode.Store(-1)
	return p
}

// State returns the current process state.
func (p *Process) State() ProcessState {
	return ProcessState(p.state.Load())
}

// IsRunning reports whether the process has not exited yet.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// ExitCode returns the exit code, or -1 while running.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns the error from waiting on the process.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// PID returns the operating-system process ID.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Done returns a channel closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the process exits or ctx is done.
func (p *Process) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.ExitError()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Signal sends sig to the process.
func (p *Process) Signal(sig os.Signal) error {
	if !p.IsRunning() || p.Cmd.Process == nil {
		return nil
	}
	return p.Cmd.Process.Signal(sig)
}

// Terminate sends SIGTERM.
func (p *Process) Terminate() error {
	return p.Signal(syscall.SIGTERM)
}

// Kill sends SIGKILL.
func (p *Process) Kill() error {
	return p.Signal(syscall.SIGKILL)
}

// reap waits for the process and records how it ended.
func (p *Process) reap() {
	err := p.Cmd.Wait()

	p.mu.Lock()
	p.exitErr = err
	p.mu.Unlock()

	code := 0
	state := StateExited
	if err != nil {
		code = -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				state = StateKilled
			}
		}
	}

	p.exitCode.Store(int32(code))
	p.state.Store(int32(state))
	close(p.done)
}
