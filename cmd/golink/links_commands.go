package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/app"
	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/icons"
	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/launcher"
	"github.com/MrSnakeDoc/golink/internal/tui"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type linkJSON struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Group      string   `json:"group"`
	GroupTitle string   `json:"group_title"`
	Keywords   []string `json:"keywords,omitempty"`
	Icon       string   `json:"icon"`
	Browser    string   `json:"browser,omitempty"`
	Profile    string   `json:"profile,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [query...]",
		Short: "List links whose title, URL or keywords contain the query",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.Current()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			entries := a.Search(query)

			if asJSON {
				return writeJSON(cmd, linksJSON(entries, cfg))
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, emptyMessage(query))
				return nil
			}
			fmt.Fprintln(out, ui.RenderLinks(entries, cfg, ui.ShouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print links as JSON")
	return cmd
}

func newPickCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pick [query...]",
		Short: "Pick a link interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.application(cmd, "error")
			if err != nil {
				return err
			}

			// load errors are shown inside the picker
			_ = a.Reload(cmd.Context())

			ctx.connectUsage(cmd.Context(), a)
			defer a.Close()

			return tui.Run(cmd.Context(), a,
				tui.WithQuery(strings.Join(args, " ")),
				tui.WithRelay(ctx.relay))
		},
	}
}

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "open <query...>",
		Short: "Open the best matching link",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}

			e, err := best(a, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				cfg, err := a.Current()
				if err != nil {
					return err
				}
				t := launcher.ResolveTarget(e.Link, cfg)
				fmt.Fprintf(out, "%s: %s\n", t.Label(), e.Link.URL)
				for _, s := range launcher.Plan(t) {
					fmt.Fprintf(out, "  %-15s %s\n", s, a.Launcher().Command(s, t))
				}
				return nil
			}

			ctx.connectUsage(cmd.Context(), a)
			defer a.Close()

			if err := a.Open(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(out, "Opened %s (%s)\n", e.Link.Title, e.Link.URL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands that would run instead of opening")
	return cmd
}

func newCopyCommand(ctx *commandContext) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "copy <query...>",
		Short: "Copy the best matching link to the clipboard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}

			e, err := best(a, strings.Join(args, " "))
			if err != nil {
				return err
			}

			text, title := e.Link.URL, "Copied URL"
			if markdown {
				text, title = fmt.Sprintf("[%s](%s)", e.Link.Title, e.Link.URL), "Copied as Markdown"
			}
			if err := writeClipboard(text); err != nil {
				return fmt.Errorf("failed to write clipboard: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Notice(ui.SuccessStyle, title, text, ui.ShouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&markdown, "markdown", "m", false, "Copy as a Markdown link")
	return cmd
}

func best(a *app.App, query string) (index.Entry, error) {
	e, ok := a.Best(query)
	if !ok {
		return index.Entry{}, domain.Errorf(domain.KindLinkNotFound, "No Links Found", "No links match %q", query)
	}
	return e, nil
}

func emptyMessage(query string) string {
	if query == "" {
		return "No links configured"
	}
	return fmt.Sprintf("No links match %q", query)
}

func linksJSON(entries []index.Entry, cfg *domain.Config) []linkJSON {
	favicons := cfg.FaviconsEnabled()
	out := make([]linkJSON, 0, len(entries))
	for _, e := range entries {
		t := launcher.ResolveTarget(e.Link, cfg)
		out = append(out, linkJSON{
			Title:      e.Link.Title,
			URL:        e.Link.URL,
			Group:      e.GroupName,
			GroupTitle: e.GroupTitle,
			Keywords:   e.Link.Keywords,
			Icon:       icons.ForLink(e.Link, favicons).String(),
			Browser:    t.Application,
			Profile:    t.Profile,
		})
	}
	return out
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
