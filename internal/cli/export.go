package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/input/keymap"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active binding set as TOML, JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.inspectApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			bindings := a.Registry().Bindings()
			if output != "" {
				return keymap.SaveFile(output, bindings)
			}

			f, err := keymap.ParseFormat(format)
			if err != nil {
				return err
			}
			return keymap.Encode(cmd.OutOrStdout(), bindings, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format (toml, json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file; the format follows its extension")
	return cmd
}
