package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/app"
	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/launcher"
	"github.com/MrSnakeDoc/golink/internal/store/configfile"
)

const testLinks = `version: 1
settings:
  defaultBrowser: Firefox
groups:
  - name: dev
    title: Development
    links:
      - title: GitHub
        url: https://github.com
        keywords: [gh, git]
      - title: GitLab
        url: https://gitlab.com
  - name: mail
    title: Mail
    links:
      - title: Inbox
        url: https://mail.example.com
        keywords: [m]
`

type recordingRunner struct {
	calls []launcher.Command
}

func (r *recordingRunner) Run(_ context.Context, c launcher.Command) error {
	r.calls = append(r.calls, c)
	return nil
}

type cliTestEnv struct {
	dir       string
	linksPath string
	settings  string
	runner    *recordingRunner
}

func setupCLITestEnv(t *testing.T, links string) *cliTestEnv {
	t.Helper()

	dir := t.TempDir()
	env := &cliTestEnv{
		dir:       dir,
		linksPath: filepath.Join(dir, "links.yaml"),
		settings:  filepath.Join(dir, "settings.toml"),
		runner:    &recordingRunner{},
	}
	if links != "" {
		if err := os.WriteFile(env.linksPath, []byte(links), 0o600); err != nil {
			t.Fatalf("write links: %v", err)
		}
	}
	return env
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand(
		app.WithStoreOptions(configfile.WithLockDir(env.dir)),
		app.WithLauncherOptions(
			launcher.WithRunner(env.runner),
			launcher.WithPlatform("linux", env.dir),
			launcher.WithLookPath(func(string) (string, bool) { return "", false }),
		),
	)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--settings", env.settings, "--config", env.linksPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestList(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"GitHub", "https://gitlab.com", "Development", "Firefox", "gh, git"} {
		requireContains(t, out, want)
	}

	out, _, err = env.run(t, "list", "git")
	if err != nil {
		t.Fatalf("list git: %v", err)
	}
	if strings.Contains(out, "Inbox") {
		t.Errorf("filtered list contains Inbox: %q", out)
	}

	out, _, err = env.run(t, "list", "zzz")
	if err != nil {
		t.Fatalf("list zzz: %v", err)
	}
	requireContains(t, out, `No links match "zzz"`)
}

func TestList_JSON(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "list", "--json", "mail")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}

	var links []linkJSON
	if err := json.Unmarshal([]byte(out), &links); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(links) != 1 || links[0].Title != "Inbox" || links[0].Group != "mail" || links[0].Browser != "Firefox" {
		t.Errorf("links = %+v", links)
	}
}

func TestOpen(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "open", "gh")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	requireContains(t, out, "Opened GitHub (https://github.com)")

	if len(env.runner.calls) != 1 {
		t.Fatalf("runner calls = %v, want 1", len(env.runner.calls))
	}
	call := env.runner.calls[0]
	if call.Name != "firefox" || len(call.Args) != 1 || call.Args[0] != "https://github.com" {
		t.Errorf("command = %v, want firefox https://github.com", call)
	}
}

func TestOpen_DryRun(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "open", "--dry-run", "inbox")
	if err != nil {
		t.Fatalf("open --dry-run: %v", err)
	}
	requireContains(t, out, "Open in Firefox: https://mail.example.com")
	requireContains(t, out, "xdg-open")
	if len(env.runner.calls) != 0 {
		t.Errorf("dry run ran %v commands", len(env.runner.calls))
	}
}

func TestOpen_NoMatch(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	_, _, err := env.run(t, "open", "zzz")
	if !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("open zzz error = %v, want link not found", err)
	}
	if got := formatError(err, false); got != `No Links Found: No links match "zzz"` {
		t.Errorf("formatError() = %q", got)
	}
}

func TestCopy(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	var copied []string
	old := writeClipboard
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { writeClipboard = old })

	if _, _, err := env.run(t, "copy", "gh"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	out, _, err := env.run(t, "copy", "--markdown", "gh")
	if err != nil {
		t.Fatalf("copy --markdown: %v", err)
	}
	requireContains(t, out, "Copied as Markdown")

	want := []string{"https://github.com", "[GitHub](https://github.com)"}
	if len(copied) != 2 || copied[0] != want[0] || copied[1] != want[1] {
		t.Errorf("copied = %q, want %q", copied, want)
	}
}

func TestAdd(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "add", "--dry-run", "--group", "dev", "--title", "Docs", "--url", "https://go.dev/doc", "--keywords", "go, doc")
	if err != nil {
		t.Fatalf("add --dry-run: %v", err)
	}
	requireContains(t, out, "+ ")
	requireContains(t, out, "Docs")

	data, _ := os.ReadFile(env.linksPath)
	if string(data) != testLinks {
		t.Fatal("dry run modified the file")
	}

	out, _, err = env.run(t, "add", "--group", "dev", "--title", "Docs", "--url", "https://go.dev/doc")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, `Link Created: "Docs" has been added`)

	out, _, err = env.run(t, "list", "docs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "https://go.dev/doc")
}

func TestImport(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	bookmarks := filepath.Join(env.dir, "bookmarks.yaml")
	content := `- Developer:
    - Github:
        - abbr: GH
          href: https://github.com
    - Go:
        - abbr: GO
          href: https://go.dev
`
	if err := os.WriteFile(bookmarks, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := env.run(t, "import", "--dry-run", bookmarks)
	if err != nil {
		t.Fatalf("import --dry-run: %v", err)
	}
	requireContains(t, out, "Added 2 links (1 new groups, 0 already present)")
	data, _ := os.ReadFile(env.linksPath)
	if string(data) != testLinks {
		t.Fatal("dry run modified the file")
	}

	out, _, err = env.run(t, "import", bookmarks)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Import Complete")

	out, _, err = env.run(t, "list", "go")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "https://go.dev")

	out, _, err = env.run(t, "import", bookmarks)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	requireContains(t, out, "All 2 links already exist")

	_, _, err = env.run(t, "import", filepath.Join(env.dir, "missing.yaml"))
	if err == nil || domain.TitleOf(err) != "Import Failed" {
		t.Errorf("import of a missing file error = %v, want Import Failed", err)
	}
}

func TestAdd_NewGroup(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	_, _, err := env.run(t, "add", "--new-group", "work", "--title", "Jira", "--url", "https://jira.example.com")
	if !errors.Is(err, domain.ErrValidation) || domain.TitleOf(err) != "Group Title Required" {
		t.Fatalf("add without group title error = %v", err)
	}

	if _, _, err := env.run(t, "add", "--new-group", "work", "--new-group-title", "Work",
		"--title", "Jira", "--url", "https://jira.example.com"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := env.run(t, "list", "jira")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Work")

	_, _, err = env.run(t, "add", "--new-group", "work", "--new-group-title", "Other",
		"--title", "Wiki", "--url", "https://wiki.example.com")
	if domain.TitleOf(err) != "Group Already Exists" {
		t.Errorf("add to taken group name error = %v, want Group Already Exists", err)
	}
}

func TestBrowserFlagCompletion(t *testing.T) {
	for _, name := range []string{"add", "edit"} {
		cmd, _, err := newRootCommand().Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%s): %v", name, err)
		}
		complete, ok := cmd.GetFlagCompletionFunc("browser")
		if !ok {
			t.Fatalf("%s --browser has no completion", name)
		}
		values, directive := complete(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("%s directive = %v", name, directive)
		}
		requireContains(t, strings.Join(values, "\n"), "com.brave.Browser\tBrave Browser")
	}
}

func TestAdd_InvalidURL(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	_, _, err := env.run(t, "add", "--group", "dev", "--title", "Bad", "--url", "not a url")
	if domain.TitleOf(err) != "Invalid URL" {
		t.Fatalf("add error = %v, want Invalid URL", err)
	}
}

func TestEdit(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "edit", "https://github.com", "--title", "GitHub Work", "--profile", "Work")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	requireContains(t, out, "Link Updated")

	data, err := os.ReadFile(env.linksPath)
	if err != nil {
		t.Fatalf("read links: %v", err)
	}
	requireContains(t, string(data), "GitHub Work")
	requireContains(t, string(data), "profile: Work")
	// untouched fields survive
	requireContains(t, string(data), "- gh")
}

func TestEdit_Errors(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	tests := []struct {
		name string
		args []string
		want *domain.Error
	}{
		{"unknown url", []string{"edit", "https://nope.example"}, domain.ErrLinkNotFound},
		{"unknown group", []string{"edit", "https://github.com", "--group", "nope"}, domain.ErrGroupNotFound},
		{"link in other group", []string{"edit", "https://github.com", "--group", "mail"}, domain.ErrLinkNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want kind %v", err, tt.want.Kind)
			}
		})
	}
}

func TestStats_Disabled(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	_, _, err := env.run(t, "stats")
	if !errors.Is(err, app.ErrUsageDisabled) {
		t.Fatalf("stats error = %v, want usage disabled", err)
	}

	_, _, err = env.run(t, "stats", "https://github.com")
	if err == nil || !strings.Contains(err.Error(), "--reset") {
		t.Errorf("stats <url> error = %v, want --reset hint", err)
	}

	_, _, err = env.run(t, "stats", "--prune")
	if !errors.Is(err, app.ErrUsageDisabled) {
		t.Errorf("stats --prune error = %v, want usage disabled", err)
	}

	if _, _, err = env.run(t, "stats", "--prune", "--reset"); err == nil {
		t.Error("stats --prune --reset succeeded, want flag conflict")
	}
}

func TestConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)

	out, _, err := env.run(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, env.linksPath)
	requireContains(t, out, "not found, using defaults")

	out, _, err = env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "3 links in 2 groups")

	out, _, err = env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if out != testLinks {
		t.Errorf("config show = %q, want the file as is", out)
	}

	if _, _, err := env.run(t, "config", "open"); err != nil {
		t.Fatalf("config open: %v", err)
	}
	if _, _, err := env.run(t, "config", "reveal"); err != nil {
		t.Fatalf("config reveal: %v", err)
	}
	if len(env.runner.calls) != 2 || env.runner.calls[0].Name != "xdg-open" {
		t.Errorf("runner calls = %v", env.runner.calls)
	}
}

func TestConfigSettings(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)
	content := "listen_addr = \"127.0.0.1:9999\"\nredis_password = \"hunter2\"\n"
	if err := os.WriteFile(env.settings, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	out, _, err := env.run(t, "config", "settings")
	if err != nil {
		t.Fatalf("config settings: %v", err)
	}
	requireContains(t, out, "127.0.0.1:9999")
	requireContains(t, out, "***REDACTED***")
	if strings.Contains(out, "hunter2") {
		t.Error("settings output leaks the redis password")
	}
}

func TestConfigValidate_Broken(t *testing.T) {
	env := setupCLITestEnv(t, "version: 1\ngroups: nope\n")

	_, _, err := env.run(t, "config", "validate")
	if err == nil {
		t.Fatal("config validate accepted a broken file")
	}
	if got := domain.TitleOf(err); got != "Configuration Error" {
		t.Errorf("TitleOf() = %q, want Configuration Error", got)
	}
}

func TestMissingLinksFile(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := env.run(t, "list")
	if !errors.Is(err, domain.ErrConfigNotFound) {
		t.Fatalf("list error = %v, want not found", err)
	}
	requireContains(t, formatError(err, false), "Configuration file not found")
}

func TestInvalidSettings(t *testing.T) {
	env := setupCLITestEnv(t, testLinks)
	if err := os.WriteFile(env.settings, []byte("log_level = \"loud\"\n"), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	_, _, err := env.run(t, "list")
	if err == nil || !strings.Contains(err.Error(), "invalid log_level") {
		t.Fatalf("list error = %v, want invalid log_level", err)
	}
}

func TestVersion(t *testing.T) {
	env := setupCLITestEnv(t, "")
	// broken settings are not read by version
	if err := os.WriteFile(env.settings, []byte("not toml ["), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	out, _, err := env.run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "golink ")
}
