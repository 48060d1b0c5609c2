package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/ui"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the links file",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigOpenCommand(ctx))
	configCmd.AddCommand(newConfigRevealCommand(ctx))
	configCmd.AddCommand(newConfigSettingsCommand(ctx))

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the links file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.application(cmd, "warn")
			if err != nil {
				return err
			}
			data, err := a.Store().Raw()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			text := string(data)
			if !raw && ui.ShouldColorize(out) {
				text = ui.Highlight(text, string(a.Store().Format()))
			}
			fmt.Fprint(out, text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Disable syntax highlighting")
	return cmd
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the links and settings file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := ctx.ensurePrefs()
			if err != nil {
				return err
			}

			settings := ctx.settingsPath
			if !ctx.settingsExists {
				settings += " (not found, using defaults)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "links:    %s\n", prefs.ConfigPath)
			fmt.Fprintf(out, "settings: %s\n", settings)
			return nil
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the links file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.Current()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Notice(ui.SuccessStyle, "Configuration valid",
				fmt.Sprintf("%d links in %d groups (%s)", cfg.LinkCount(), len(cfg.Groups), a.ConfigPath()),
				ui.ShouldColorize(out)))
			return nil
		},
	}
}

func newConfigOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the links file in its default application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.application(cmd, "warn")
			if err != nil {
				return err
			}
			return a.OpenConfigFile(cmd.Context())
		},
	}
}

func newConfigRevealCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal",
		Short: "Show the links file in the file manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.application(cmd, "warn")
			if err != nil {
				return err
			}
			return a.RevealConfigFile(cmd.Context())
		},
	}
}

func newConfigSettingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings, secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := ctx.ensurePrefs()
			if err != nil {
				return err
			}
			data, err := prefs.Redacted().Encode()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			text := string(data)
			if ui.ShouldColorize(out) {
				text = ui.Highlight(text, "toml")
			}
			fmt.Fprint(out, text)
			return nil
		},
	}
}
