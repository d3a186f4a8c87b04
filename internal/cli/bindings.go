package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/input/keymap"
)

var (
	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	chordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func newBindingsCmd(flags *globalFlags) *cobra.Command {
	var (
		category string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "List the active bindings grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.inspectApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			bindings := a.Registry().Bindings()
			if category != "" {
				bindings = filterCategory(bindings, category)
			}
			if search != "" {
				results := keymap.Search(bindings, search, 0)
				bindings = make([]keymap.Binding, 0, len(results))
				for _, r := range results {
					bindings = append(bindings, r.Binding)
				}
			}
			return renderBindings(cmd.OutOrStdout(), bindings)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show bindings of this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Fuzzy-match chords, actions and descriptions")
	return cmd
}

func filterCategory(bindings []keymap.Binding, category string) []keymap.Binding {
	out := bindings[:0:0]
	for _, b := range bindings {
		if strings.EqualFold(b.Category, category) {
			out = append(out, b)
		}
	}
	return out
}

// renderBindings writes one section per category with aligned chord,
// action and description columns.
func renderBindings(w io.Writer, bindings []keymap.Binding) error {
	chordWidth, actionWidth := 0, 0
	for _, b := range bindings {
		chordWidth = max(chordWidth, lipgloss.Width(b.Chord.String()))
		actionWidth = max(actionWidth, lipgloss.Width(b.Action.String()))
	}

	var sb strings.Builder
	for i, cat := range keymap.GroupByCategory(bindings) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(categoryStyle.Render(cat.Name))
		sb.WriteString("\n")
		for _, b := range cat.Bindings {
			row := lipgloss.JoinHorizontal(lipgloss.Top,
				"  ",
				chordStyle.Width(chordWidth+2).Render(b.Chord.String()),
				actionStyle.Width(actionWidth+2).Render(b.Action.String()),
				b.Description,
			)
			sb.WriteString(strings.TrimRight(row, " "))
			sb.WriteString("\n")
		}
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
