package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/app"
	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/linkform"
	"github.com/MrSnakeDoc/golink/internal/store/configfile"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

// linkFlags are the form fields shared by add and edit.
type linkFlags struct {
	title       string
	url         string
	icon        string
	keywords    string
	application string
	profile     string
	dryRun      bool
}

func (f *linkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Link title")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "Link URL")
	cmd.Flags().StringVar(&f.icon, "icon", "", `Icon, e.g. "iconify:simple-icons:github", "Globe" or an image URL`)
	cmd.Flags().StringVarP(&f.keywords, "keywords", "k", "", "Comma separated search keywords")
	cmd.Flags().StringVarP(&f.application, "browser", "b", "", "Browser name or bundle identifier (empty for the default)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Browser profile")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show the change without writing the file")

	_ = cmd.RegisterFlagCompletionFunc("browser", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return linkform.BrowserCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
}

// apply copies the flags the user set onto v.
func (f *linkFlags) apply(cmd *cobra.Command, v *linkform.Values) {
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("title", &v.Title, f.title)
	set("url", &v.URL, f.url)
	set("icon", &v.Icon, f.icon)
	set("keywords", &v.Keywords, f.keywords)
	set("browser", &v.Application, f.application)
	set("profile", &v.Profile, f.profile)
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var flags linkFlags
	var group, newGroup, newGroupTitle string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a link to the configuration file",
		Example: `  golink add --group dev --title GitHub --url https://github.com --keywords gh,git
  golink add --new-group work --new-group-title Work --title Jira --url https://jira.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}

			var v linkform.Values
			flags.apply(cmd, &v)
			v.Group = group
			if newGroup != "" || newGroupTitle != "" {
				v.NewGroup = true
				v.NewGroupName = newGroup
				v.NewGroupTitle = newGroupTitle
			}

			out := cmd.OutOrStdout()
			if flags.dryRun {
				before, after, err := a.PreviewAdd(v)
				if err != nil {
					return err
				}
				printDiff(out, a.ConfigPath(), before, after)
				return nil
			}

			link, err := a.AddLink(cmd.Context(), v)
			if err != nil {
				return err
			}
			printSaved(out, linkform.ModeCreate, link)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&group, "group", "g", "", "Existing group name")
	cmd.Flags().StringVar(&newGroup, "new-group", "", "Name of a group to create")
	cmd.Flags().StringVar(&newGroupTitle, "new-group-title", "", "Title of the group to create")
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var flags linkFlags
	var group string

	cmd := &cobra.Command{
		Use:   "edit <url>",
		Short: "Edit the link with the given URL in place",
		Example: `  golink edit https://github.com --title "GitHub (work)" --profile Work
  golink edit https://github.com --group dev --browser ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.loadedApplication(cmd)
			if err != nil {
				return err
			}

			originalURL := strings.TrimSpace(args[0])
			link, groupName, err := findLink(a, originalURL, group)
			if err != nil {
				return err
			}

			v := linkform.FromLink(link, groupName)
			flags.apply(cmd, &v)

			out := cmd.OutOrStdout()
			if flags.dryRun {
				before, after, err := a.PreviewEdit(originalURL, v)
				if err != nil {
					return err
				}
				printDiff(out, a.ConfigPath(), before, after)
				return nil
			}

			updated, err := a.EditLink(cmd.Context(), originalURL, v)
			if err != nil {
				return err
			}
			printSaved(out, linkform.ModeEdit, updated)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&group, "group", "g", "", "Group holding the link (needed when the URL is in several groups)")
	return cmd
}

// findLink locates the link with url, in group when one is given.
func findLink(a *app.App, url, group string) (domain.Link, string, error) {
	cfg, err := a.Current()
	if err != nil {
		return domain.Link{}, "", err
	}

	var (
		found  domain.Link
		owner  string
		groups []string
	)
	for _, g := range cfg.Groups {
		if group != "" && g.Name != group {
			continue
		}
		if i := g.FindLink(url); i >= 0 {
			if owner == "" {
				found, owner = g.Links[i], g.Name
			}
			groups = append(groups, g.Name)
		}
	}

	switch {
	case group != "" && cfg.FindGroup(group) < 0:
		return domain.Link{}, "", domain.Errorf(domain.KindGroupNotFound, "Group Not Found",
			"Group '%s' not found", group)
	case len(groups) == 0:
		return domain.Link{}, "", domain.Errorf(domain.KindLinkNotFound, "Link Not Found",
			"Link not found: %s", url)
	case len(groups) > 1:
		return domain.Link{}, "", domain.Errorf(domain.KindValidation, "Ambiguous Link",
			"%q is in groups %s; pass --group", url, strings.Join(groups, ", "))
	}
	return found, owner, nil
}

func printDiff(w io.Writer, path string, before, after []byte) {
	color := ui.ShouldColorize(w)
	if configfile.Unchanged(before, after) {
		fmt.Fprintln(w, ui.Notice(ui.MutedStyle, "No changes", path, color))
		return
	}

	lines := ui.DiffLines(string(before), string(after))
	fmt.Fprintln(w, ui.Notice(ui.TitleStyle, path, ui.DiffStat(lines), color))
	fmt.Fprint(w, ui.RenderDiff(lines, diffContext, color))
}

func printSaved(w io.Writer, mode linkform.Mode, link domain.Link) {
	title, message := linkform.SuccessMessage(mode, link.Title)
	fmt.Fprintln(w, ui.Notice(ui.SuccessStyle, title, message, ui.ShouldColorize(w)))
}
