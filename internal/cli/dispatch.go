package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/app"
)

func newDispatchCmd(flags *globalFlags) *cobra.Command {
	var terminate bool

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch chords read from standard input, one per line",
		Long: `Run the dispatcher on chords read from standard input, one chord
specification per line. Blank lines and lines starting with '#' are
ignored. SIGHUP and changes to the config file reload the binding set.
Launched programs keep running after dispatch exits unless
--terminate-on-exit is given.`,
		Example: `  echo super+Return | tilekeys dispatch
  tilekeys dispatch --config ./config.toml < chords.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(app.Options{
				ConfigPath: flags.configPath,
				LogLevel:   flags.logLevel,
				LogOutput:  cmd.ErrOrStderr(),

				TerminateOnClose: terminate,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.Run(ctx, app.ReadChords(ctx, cmd.InOrStdin(), a.Logger()))
		},
	}

	cmd.Flags().BoolVar(&terminate, "terminate-on-exit", false, "Terminate launched programs still running when dispatch exits")
	return cmd
}
