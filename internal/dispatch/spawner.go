package dispatch

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/tilekeys/internal/logging"
)

// DefaultShell runs spawn command lines.
var DefaultShell = []string{"/bin/sh", "-c"}

// Spawner starts command lines asynchronously and tracks the resulting
// processes until they exit. By default every process is started in its
// own session and outlives the spawner: Release forgets them. Shutdown
// terminates whatever is still running and is meant for processes the
// caller supervises.
//
// Spawner is safe for concurrent use.
type Spawner struct {
	mu        sync.RWMutex
	processes map[string]*Process

	shell        []string
	env          []string
	dir          string
	maxProcesses int
	onExit       func(*Process)
	attached     bool
	log          zerolog.Logger

	closed   atomic.Bool
	released atomic.Bool
	reaped   sync.WaitGroup
}

// SpawnerOption configures a Spawner.
type SpawnerOption func(*Spawner)

// WithShell sets the argv prefix the command line is appended to.
func WithShell(shell ...string) SpawnerOption {
	return func(s *Spawner) {
		s.shell = append([]string(nil), shell...)
	}
}

// WithEnv sets extra environment entries ("KEY=value").
func WithEnv(env ...string) SpawnerOption {
	return func(s *Spawner) {
		s.env = append([]string(nil), env...)
	}
}

// WithDir sets the working directory of spawned processes.
func WithDir(dir string) SpawnerOption {
	return func(s *Spawner) {
		s.dir = dir
	}
}

// WithMaxProcesses limits concurrently tracked processes; 0 means
// unlimited.
func WithMaxProcesses(n int) SpawnerOption {
	return func(s *Spawner) {
		s.maxProcesses = n
	}
}

// WithAttached keeps spawned processes in the spawner's session and
// process group, so they receive the same terminal signals.
func WithAttached() SpawnerOption {
	return func(s *Spawner) {
		s.attached = true
	}
}

// WithExitCallback sets a function called after each process exits.
func WithExitCallback(fn func(*Process)) SpawnerOption {
	return func(s *Spawner) {
		s.onExit = fn
	}
}

// WithSpawnLogger sets the logger.
func WithSpawnLogger(log zerolog.Logger) SpawnerOption {
	return func(s *Spawner) {
		s.log = log
	}
}

// NewSpawner creates a spawner.
func NewSpawner(opts ...SpawnerOption) *Spawner {
	s := &Spawner{
		processes: make(map[string]*Process),
		shell:     DefaultShell,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.WithComponent(s.log, "spawner")
	return s
}

// Spawn starts commandLine and returns without waiting for it.
// ctx only guards the start; the process outlives it.
func (s *Spawner) Spawn(ctx context.Context, commandLine string) (*Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if commandLine == "" {
		return nil, fmt.Errorf("spawn: empty command line")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrShutdown
	}
	if s.maxProcesses > 0 && len(s.processes) >= s.maxProcesses {
		return nil, fmt.Errorf("%w: %d", ErrProcessLimit, s.maxProcesses)
	}

	argv := append(append([]string(nil), s.shell...), commandLine)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = s.dir
	if !s.attached {
		cmd.SysProcAttr = detachedAttr()
	}
	if len(s.env) > 0 {
		cmd.Env = append(cmd.Environ(), s.env...)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %q: %w", commandLine, err)
	}

	proc := newProcess(uuid.New().String(), commandLine, cmd)
	proc.Started = time.Now()
	s.processes[proc.ID] = proc

	s.log.Info().
		Str("id", proc.ID).
		Int("pid", proc.PID()).
		Str("command", commandLine).
		Msg("process spawned")

	s.reaped.Add(1)
	go s.monitor(proc)

	return proc, nil
}

// monitor reaps proc and drops it from tracking.
func (s *Spawner) monitor(proc *Process) {
	defer s.reaped.Done()

	proc.reap()

	s.log.Debug().
		Str("id", proc.ID).
		Int("exit_code", proc.ExitCode()).
		Str("state", proc.State().String()).
		Msg("process exited")

	if s.onExit != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().Interface("panic", r).Msg("exit callback panicked")
				}
			}()
			s.onExit(proc)
		}()
	}

	s.mu.Lock()
	delete(s.processes, proc.ID)
	s.mu.Unlock()
}

// Get returns a tracked process by ID, or nil.
func (s *Spawner) Get(id string) *Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processes[id]
}

// List returns the tracked processes.
func (s *Spawner) List() []*Process {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		out = append(out, p)
	}
	return out
}

// Count returns the number of tracked processes.
func (s *Spawner) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// Release stops accepting spawns and stops tracking every process
// without signalling it. Released processes keep running after the
// spawner's owner exits. Shutdown after Release is a no-op.
func (s *Spawner) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Swap(true) {
		return
	}
	s.released.Store(true)

	if n := len(s.processes); n > 0 {
		s.log.Debug().Int("processes", n).Msg("releasing running processes")
	}
	s.processes = make(map[string]*Process)
}

// Shutdown stops accepting spawns, sends SIGTERM to every tracked
// process and waits up to timeout before sending SIGKILL. It returns once
// every process has been reaped.
func (s *Spawner) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	already := s.closed.Swap(true)
	s.mu.Unlock()
	if already {
		if !s.released.Load() {
			s.reaped.Wait()
		}
		return
	}

	procs := s.List()
	for _, p := range procs {
		_ = p.Terminate()
	}

	done := make(chan struct{})
	go func() {
		s.reaped.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		for _, p := range s.List() {
			s.log.Warn().Str("id", p.ID).Msg("process ignored SIGTERM, killing")
			_ = p.Kill()
		}
		<-done
	}
}

// IsShutdown reports whether Shutdown or Release has been called.
func (s *Spawner) IsShutdown() bool {
	return s.closed.Load()
}
