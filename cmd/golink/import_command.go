package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/sources/homepage"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import links from Homepage services.yaml or bookmarks.yaml",
		Long: `Import links from Homepage dashboard files (services.yaml, bookmarks.yaml).

Each Homepage category becomes a group; links whose URL already exists in
that group are skipped. Template variables ({{HOMEPAGE_VAR_...}}) are not
resolved, so links using them in their href are left out.`,
		Example: `  golink import ~/homepage/config/services.yaml ~/homepage/config/bookmarks.yaml
  golink import bookmarks.yaml --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var groups []domain.Group
			for _, path := range args {
				doc, err := homepage.NewLoader(path).Load()
				if err != nil {
					return domain.Wrap(domain.KindConfigUnreadable, "Import Failed", domain.MessageOf(err), err)
				}
				g, err := homepage.Groups(doc)
				if err != nil {
					return domain.Wrap(domain.KindValidation, "Import Failed",
						fmt.Sprintf("%s: %s", path, err), err)
				}
				groups = append(groups, g...)
			}

			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := ui.ShouldColorize(out)

			if dryRun {
				before, after, res, err := a.PreviewImport(groups)
				if err != nil {
					return err
				}
				printDiff(out, a.ConfigPath(), before, after)
				fmt.Fprintln(out, importSummary(res.Added, res.NewGroups, res.Skipped))
				return nil
			}

			res, err := a.ImportGroups(cmd.Context(), groups)
			if err != nil {
				return err
			}
			if res.Added == 0 {
				fmt.Fprintln(out, ui.Notice(ui.MutedStyle, "Nothing to Import",
					fmt.Sprintf("All %d links already exist", res.Skipped), color))
				return nil
			}
			fmt.Fprintln(out, ui.Notice(ui.SuccessStyle, "Import Complete",
				importSummary(res.Added, res.NewGroups, res.Skipped), color))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the change without writing the file")
	return cmd
}

func importSummary(added, newGroups, skipped int) string {
	return fmt.Sprintf("Added %d links (%d new groups, %d already present)", added, newGroups, skipped)
}
