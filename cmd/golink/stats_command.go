package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/app"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var reset, prune bool

	cmd := &cobra.Command{
		Use:   "stats [url]",
		Short: "Show how often links were opened",
		Long:  "Show how often links were opened. Counters live in Redis; set redis_addr to enable them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !reset {
				return fmt.Errorf("a url argument is only accepted with --reset")
			}

			var (
				a   *app.App
				err error
			)
			if prune {
				a, err = ctx.loadedApplication(cmd)
			} else {
				a, err = ctx.application(cmd, "warn")
			}
			if err != nil {
				return err
			}
			if err := a.ConnectUsage(cmd.Context()); err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			color := ui.ShouldColorize(out)

			if prune {
				n, err := a.PruneUsage(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to prune usage: %w", err)
				}
				fmt.Fprintln(out, ui.Notice(ui.SuccessStyle, "Usage Pruned",
					fmt.Sprintf("Removed %d stale counters", n), color))
				return nil
			}

			if reset {
				url := ""
				if len(args) > 0 {
					url = args[0]
				}
				if err := a.ResetUsage(cmd.Context(), url); err != nil {
					return fmt.Errorf("failed to reset usage: %w", err)
				}
				target := "all links"
				if url != "" {
					target = url
				}
				fmt.Fprintln(out, ui.Notice(ui.SuccessStyle, "Usage Reset", target, color))
				return nil
			}

			stats, err := a.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read usage: %w", err)
			}
			if len(stats) == 0 {
				fmt.Fprintln(out, "No links opened yet")
				return nil
			}
			fmt.Fprintln(out, ui.RenderStats(stats, color))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Reset the counter of url, or all counters")
	cmd.Flags().BoolVar(&prune, "prune", false, "Remove counters of links deleted more than usage_retention ago")
	cmd.MarkFlagsMutuallyExclusive("reset", "prune")
	return cmd
}
