package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/app"
)

// newRootCommand builds the CLI. opts are passed to every App the
// commands create.
func newRootCommand(opts ...app.Option) *cobra.Command {
	var settingsFlag string
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&settingsFlag, &configFlag, &logLevelFlag, opts)

	rootCmd := &cobra.Command{
		Use:           "golink",
		Short:         "Open your go links from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensurePrefs()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Links file path (overrides config_path)")
	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "Settings file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newPickCommand(ctx))
	rootCmd.AddCommand(newOpenCommand(ctx))
	rootCmd.AddCommand(newCopyCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newEditCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
