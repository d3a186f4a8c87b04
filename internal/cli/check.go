package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/app"
	"github.com/dshills/tilekeys/internal/input/keymap"
	"github.com/dshills/tilekeys/internal/palette"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var skipPalette bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and report every binding conflict",
		Long: `Load the configuration, build the full binding set and report every
chord bound more than once, instead of stopping at the first conflict.
The palette file is validated as well and the theme derived from it is
printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, file, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = "(defaults)"
			}
			fmt.Fprintf(out, "config: %s\n", file)

			candidates, err := app.Candidates(commandContext(cmd), cfg)
			if err != nil {
				return err
			}

			problems := 0
			conflicts := keymap.FindConflicts(candidates)
			for _, c := range conflicts {
				fmt.Fprintf(out, "conflict: %s\n", c.Error())
				problems++
			}
			fmt.Fprintf(out, "bindings: %d candidates, %d conflicts\n", len(candidates), len(conflicts))

			if !skipPalette {
				theme, err := app.LoadTheme(cfg)
				if err != nil {
					fmt.Fprintf(out, "palette: %v\n", err)
					problems++
				} else {
					fmt.Fprintf(out, "palette: ok\n")
					renderTheme(out, theme)
				}
			}

			if problems > 0 {
				return fmt.Errorf("%w: %d problems", ErrCheckFailed, problems)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPalette, "skip-palette", false, "Do not validate the palette file")
	return cmd
}

// renderTheme prints the theme colors, each next to a swatch.
func renderTheme(w io.Writer, theme palette.Theme) {
	rows := []struct {
		name  string
		color string
	}{
		{"border", theme.BorderNormal},
		{"border focus", theme.BorderFocus},
		{"bar", theme.BarBackground},
		{"foreground", theme.Foreground},
		{"group active", theme.GroupBox.Active},
		{"group current", theme.GroupBox.ThisCurrentScreen},
		{"group urgent", theme.GroupBox.Urgent},
	}
	for _, r := range rows {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(r.color)).Render("  ")
		fmt.Fprintf(w, "theme: %-14s %s %s\n", r.name, swatch, r.color)
	}
}
