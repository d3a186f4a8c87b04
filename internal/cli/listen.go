package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/app"
	"github.com/dshills/tilekeys/internal/input/key"
	"github.com/dshills/tilekeys/internal/terminal"
)

// historySize is the number of chords shown by listen.
const historySize = 10

func newListenCmd(flags *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Read chords from terminal key events",
		Long: `Open the terminal in raw mode and show how each key press resolves.
Terminals report the logo key as Meta, which maps to super. Without
--dry-run the bound actions are executed. Press Ctrl+C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The screen owns the terminal, so logs are dropped.
			a, err := app.New(app.Options{
				ConfigPath:  flags.configPath,
				LogLevel:    flags.logLevel,
				LogOutput:   io.Discard,
				SkipPalette: dryRun,
			})
			if err != nil {
				return err
			}
			defer a.Close()

			term, err := terminal.New()
			if err != nil {
				return fmt.Errorf("failed to create terminal: %w", err)
			}
			if err := term.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal: %w", err)
			}
			defer term.Shutdown()

			return listen(commandContext(cmd), a, term, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve chords without executing actions")
	return cmd
}

// listen resolves chords from term until the quit key and keeps a short
// history on screen.
func listen(ctx context.Context, a *app.Application, term *terminal.Terminal, dryRun bool) error {
	header := fmt.Sprintf("tilekeys listen: %d bindings, Ctrl+C to quit", a.Registry().Len())
	history := make([]string, 0, historySize)
	term.Status(header)

	for chord := range term.Chords(ctx) {
		line := describe(ctx, a, chord, dryRun)
		if len(history) == historySize {
			history = history[1:]
		}
		history = append(history, line)
		term.Status(append([]string{header, ""}, history...)...)
	}
	return nil
}

func describe(ctx context.Context, a *app.Application, chord key.Chord, dryRun bool) string {
	b, ok := a.Registry().Lookup(chord)
	if !ok {
		return chord.String() + "  (unbound)"
	}
	if dryRun {
		return b.String()
	}
	if _, err := a.Dispatcher().Handle(ctx, chord); err != nil {
		return b.String() + "  error: " + err.Error()
	}
	return b.String()
}

