package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/tilekeys/internal/logging"
)

// Host is the window-manager side of the dispatcher. It owns groups,
// layouts and windows; tilekeys only names the operation.
type Host interface {
	// Forward requests a named host operation such as "layout.left".
	Forward(ctx context.Context, op string) error

	// SwitchGroup shows the named group on the focused screen.
	SwitchGroup(ctx context.Context, group string) error

	// SendToGroup moves the focused window to the named group.
	SendToGroup(ctx context.Context, group string) error

	// ToggleScratchpad shows or hides a dropdown of a scratchpad group.
	ToggleScratchpad(ctx context.Context, scratchpad, dropdown string) error
}

// Dropdown is what the host needs to create a dropdown window the first
// time it is toggled.
type Dropdown struct {
	// Command is the command line started inside the dropdown.
	Command string

	// Opacity is the window opacity in [0,1].
	Opacity float64
}

// DropdownLookup returns the dropdown named dropdown in scratchpad. It is
// called on every toggle so configuration reloads are picked up.
type DropdownLookup func(scratchpad, dropdown string) (Dropdown, bool)

// LogHost is a Host that only logs the operations it receives.
type LogHost struct {
	log       zerolog.Logger
	dropdowns DropdownLookup
}

// NewLogHost creates a logging host. dropdowns may be nil.
func NewLogHost(log zerolog.Logger, dropdowns DropdownLookup) *LogHost {
	return &LogHost{log: logging.WithComponent(log, "host"), dropdowns: dropdowns}
}

// Forward implements Host.
func (h *LogHost) Forward(_ context.Context, op string) error {
	h.log.Info().Str("op", op).Msg("host operation")
	return nil
}

// SwitchGroup implements Host.
func (h *LogHost) SwitchGroup(_ context.Context, group string) error {
	h.log.Info().Str("group", group).Msg("switch group")
	return nil
}

// SendToGroup implements Host.
func (h *LogHost) SendToGroup(_ context.Context, group string) error {
	h.log.Info().Str("group", group).Msg("send window to group")
	return nil
}

// ToggleScratchpad implements Host.
func (h *LogHost) ToggleScratchpad(_ context.Context, scratchpad, dropdown string) error {
	ev := h.log.Info().Str("scratchpad", scratchpad).Str("dropdown", dropdown)
	if h.dropdowns != nil {
		if dd, ok := h.dropdowns(scratchpad, dropdown); ok {
			ev = ev.Str("command", dd.Command).Float64("opacity", dd.Opacity)
		}
	}
	ev.Msg("toggle dropdown")
	return nil
}

// CommandRunner runs a host client command line and returns its output.
type CommandRunner func(ctx context.Context, argv []string) ([]byte, error)

// ExecHost is a Host that invokes a host client binary.
//
// Each operation appends its wire name and arguments to the configured
// argv prefix, e.g. ["wmctl", "call"] + ["group.switch", "Dev"]. A
// scratchpad toggle whose dropdown is known also carries its command
// line and opacity:
//
//	wmctl call scratchpad.toggle scratchpad term "alacritty -e fish" 0.9
type ExecHost struct {
	client    []string
	run       CommandRunner
	dropdowns DropdownLookup
	log       zerolog.Logger
}

// ExecHostOption configures an ExecHost.
type ExecHostOption func(*ExecHost)

// WithRunner replaces the command runner.
func WithRunner(run CommandRunner) ExecHostOption {
	return func(h *ExecHost) {
		h.run = run
	}
}

// WithDropdowns sets the lookup used to describe toggled dropdowns.
func WithDropdowns(lookup DropdownLookup) ExecHostOption {
	return func(h *ExecHost) {
		h.dropdowns = lookup
	}
}

// WithHostLogger sets the logger.
func WithHostLogger(log zerolog.Logger) ExecHostOption {
	return func(h *ExecHost) {
		h.log = log
	}
}

// NewExecHost creates a host invoking client. client must not be empty.
func NewExecHost(client []string, opts ...ExecHostOption) (*ExecHost, error) {
	if len(client) == 0 || client[0] == "" {
		return nil, fmt.Errorf("host client command is empty")
	}
	h := &ExecHost{
		client: append([]string(nil), client...),
		run:    runCommand,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = logging.WithComponent(h.log, "host")
	return h, nil
}

// Forward implements Host.
func (h *ExecHost) Forward(ctx context.Context, op string) error {
	return h.call(ctx, "host", op)
}

// SwitchGroup implements Host.
func (h *ExecHost) SwitchGroup(ctx context.Context, group string) error {
	return h.call(ctx, "group.switch", group)
}

// SendToGroup implements Host.
func (h *ExecHost) SendToGroup(ctx context.Context, group string) error {
	return h.call(ctx, "group.send", group)
}

// ToggleScratchpad implements Host.
func (h *ExecHost) ToggleScratchpad(ctx context.Context, scratchpad, dropdown string) error {
	args := []string{"scratchpad.toggle", scratchpad, dropdown}
	if h.dropdowns != nil {
		if dd, ok := h.dropdowns(scratchpad, dropdown); ok {
			args = append(args, dd.Command, strconv.FormatFloat(dd.Opacity, 'g', -1, 64))
		}
	}
	return h.call(ctx, args...)
}

func (h *ExecHost) call(ctx context.Context, args ...string) error {
	argv := make([]string, 0, len(h.client)+len(args))
	argv = append(argv, h.client...)
	argv = append(argv, args...)

	h.log.Debug().Strs("argv", argv).Msg("invoking host client")
	out, err := h.run(ctx, argv)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("host client %s: %w: %s", h.client[0], err, msg)
		}
		return fmt.Errorf("host client %s: %w", h.client[0], err)
	}
	return nil
}

func runCommand(ctx context.Context, argv []string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}
