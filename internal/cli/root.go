// Package cli provides the command-line interface for tilekeys.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/tilekeys/internal/app"
	"github.com/dshills/tilekeys/internal/config"
)

// ErrCheckFailed is returned by the check command when problems were found.
var ErrCheckFailed = errors.New("configuration check failed")

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCmd creates the root command for tilekeys.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tilekeys",
		Short: "Keybinding registry and dispatcher for tiling window managers",
		Long: `tilekeys builds the keybinding set of a tiling window manager from its
configuration, rejects conflicting chords and dispatches key chords to
process launches and window manager commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tilekeys %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newCheckCmd(flags))
	rootCmd.AddCommand(newBindingsCmd(flags))
	rootCmd.AddCommand(newResolveCmd(flags))
	rootCmd.AddCommand(newExportCmd(flags))
	rootCmd.AddCommand(newDispatchCmd(flags))
	rootCmd.AddCommand(newListenCmd(flags))

	return rootCmd
}

// inspectApp creates an application for commands that only read the
// binding set. The palette is skipped and logging is quiet unless a
// level was requested.
func (f *globalFlags) inspectApp(stderr io.Writer) (*app.Application, error) {
	level := f.logLevel
	if level == "" {
		level = "warn"
	}
	return app.New(app.Options{
		ConfigPath:  f.configPath,
		LogLevel:    level,
		LogOutput:   stderr,
		SkipPalette: true,
	})
}

// loadConfig loads the configuration without building an application.
func (f *globalFlags) loadConfig() (*config.Config, string, error) {
	var opts []config.Option
	if f.configPath != "" {
		opts = append(opts, config.WithFile(f.configPath))
	}
	mgr, err := config.NewManager(opts...)
	if err != nil {
		return nil, "", err
	}
	if err := mgr.Load(); err != nil {
		return nil, "", err
	}
	return mgr.Get(), mgr.ConfigFileUsed(), nil
}

// commandContext returns the command's context, or Background when it
// was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
