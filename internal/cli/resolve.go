package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/input/key"
)

func newResolveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <chord>",
		Short: "Show the action bound to a chord",
		Example: `  tilekeys resolve super+Return
  tilekeys resolve mod4+shift+3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chord, err := key.Parse(args[0])
			if err != nil {
				return err
			}

			a, err := flags.inspectApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			b, ok := a.Registry().Lookup(chord)
			if !ok {
				return fmt.Errorf("%s is not bound", chord)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, b.String())
			if b.Description != "" {
				fmt.Fprintf(out, "  %s\n", b.Description)
			}
			return nil
		},
	}
}
