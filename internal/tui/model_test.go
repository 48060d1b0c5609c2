package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/index"
)

type fakeController struct {
	cfg       *domain.Config
	err       error
	opened    []index.Entry
	openErr   error
	reloads   int
	reloadErr error
	edits     int
	reveals   int
}

func (f *fakeController) Search(query string) []index.Entry {
	return index.Filter(index.Flatten(f.cfg), query)
}

func (f *fakeController) Current() (*domain.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func (f *fakeController) Open(_ context.Context, e index.Entry) error {
	f.opened = append(f.opened, e)
	return f.openErr
}

func (f *fakeController) Reload(context.Context) error {
	f.reloads++
	f.err = f.reloadErr
	return f.reloadErr
}

func (f *fakeController) OpenConfigFile(context.Context) error   { f.edits++; return nil }
func (f *fakeController) RevealConfigFile(context.Context) error { f.reveals++; return nil }
func (f *fakeController) ConfigPath() string                     { return "/tmp/links.yaml" }

func sampleConfig() *domain.Config {
	return &domain.Config{
		Version:  1,
		Settings: &domain.Settings{DefaultBrowser: "Google Chrome", DefaultProfile: "Work"},
		Groups: []domain.Group{
			{Name: "dev", Title: "Development", Links: []domain.Link{
				{Title: "GitHub", URL: "https://github.com", Keywords: []string{"git"}},
				{Title: "GitLab", URL: "https://gitlab.com"},
			}},
			{Name: "mail", Title: "Mail", Links: []domain.Link{
				{Title: "Inbox", URL: "https://mail.example.com", Application: "Firefox"},
			}},
		},
	}
}

func newModel(t *testing.T, ctrl *fakeController, opts ...Option) (*Model, *[]string) {
	t.Helper()
	var copied []string
	opts = append(opts, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))
	return New(context.Background(), ctrl, opts...), &copied
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := m.Update(cmd())
	return next
}

func TestNew_ListsAllLinks(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: sampleConfig()})

	if len(m.entries) != 3 {
		t.Fatalf("entries = %v, want 3", len(m.entries))
	}
	e, ok := m.Selected()
	if !ok || e.Link.Title != "GitHub" {
		t.Errorf("Selected() = %q, %v; want GitHub", e.Link.Title, ok)
	}

	view := m.View()
	for _, want := range []string{"Development", "Mail", "GitHub", "https://gitlab.com", "Chrome", "Work", "Firefox"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFilter(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: sampleConfig()})

	typeText(m, "GIT")
	if got := m.input.Value(); got != "GIT" {
		t.Fatalf("input = %q, want GIT", got)
	}
	if len(m.entries) != 2 {
		t.Errorf("entries = %v, want 2", len(m.entries))
	}

	typeText(m, "zz")
	if len(m.entries) != 0 {
		t.Errorf("entries = %v, want 0", len(m.entries))
	}
	view := m.View()
	if !strings.Contains(view, "No Links Found") || !strings.Contains(view, `No links match "GITzz"`) {
		t.Errorf("View() = %q, want empty view", view)
	}
}

func TestWithQuery(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: sampleConfig()}, WithQuery("inbox"))

	e, ok := m.Selected()
	if !ok || e.Link.Title != "Inbox" {
		t.Errorf("Selected() = %q, %v; want Inbox", e.Link.Title, ok)
	}
}

func TestEmptyConfig(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: &domain.Config{Version: 1}})

	if !strings.Contains(m.View(), "No links configured") {
		t.Errorf("View() = %q", m.View())
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok with no links")
	}
}

func TestCursorMovement(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: sampleConfig()})

	tests := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "GitHub"},
		{tea.KeyDown, "GitLab"},
		{tea.KeyDown, "Inbox"},
		{tea.KeyDown, "Inbox"},
		{tea.KeyPgUp, "GitHub"},
		{tea.KeyPgDown, "Inbox"},
	}

	for _, tt := range tests {
		m.Update(keyMsg(tt.key))
		e, _ := m.Selected()
		if e.Link.Title != tt.want {
			t.Errorf("after %v Selected() = %q, want %q", tt.key, e.Link.Title, tt.want)
		}
	}
}

func TestOpen_QuitsOnSuccess(t *testing.T) {
	ctrl := &fakeController{cfg: sampleConfig()}
	m, _ := newModel(t, ctrl)
	m.Update(keyMsg(tea.KeyDown))

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	next := run(t, m, cmd)

	if len(ctrl.opened) != 1 || ctrl.opened[0].Link.Title != "GitLab" {
		t.Fatalf("opened = %+v, want GitLab", ctrl.opened)
	}
	if next == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := next().(tea.QuitMsg); !ok {
		t.Error("open did not quit the picker")
	}
	if m.View() != "" {
		t.Error("View() not empty after quitting")
	}
}

func TestOpen_ErrorStays(t *testing.T) {
	ctrl := &fakeController{
		cfg:     sampleConfig(),
		openErr: domain.Errorf(domain.KindLaunch, "Failed to Open", "no browser"),
	}
	m, _ := newModel(t, ctrl)

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	if next := run(t, m, cmd); next != nil {
		t.Error("failed open should not quit")
	}
	if m.status.title != "Failed to Open" {
		t.Errorf("status = %q, want Failed to Open", m.status.title)
	}
}

func TestCopy(t *testing.T) {
	m, copied := newModel(t, &fakeController{cfg: sampleConfig()})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}, Alt: true})

	want := []string{"https://github.com", "[GitHub](https://github.com)"}
	if len(*copied) != 2 || (*copied)[0] != want[0] || (*copied)[1] != want[1] {
		t.Errorf("copied = %q, want %q", *copied, want)
	}
	if m.status.title != "Copied as Markdown" {
		t.Errorf("status = %q", m.status.title)
	}
	if m.input.Value() != "" {
		t.Errorf("copy keys leaked into the filter: %q", m.input.Value())
	}
}

func TestCopy_Failure(t *testing.T) {
	m := New(context.Background(), &fakeController{cfg: sampleConfig()},
		WithClipboard(func(string) error { return errors.New("no clipboard") }))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.status.title != "Copy Failed" {
		t.Errorf("status = %q, want Copy Failed", m.status.title)
	}
}

func TestErrorState(t *testing.T) {
	loadErr := domain.Errorf(domain.KindConfigParse, "Configuration Error", "Invalid YAML in links.yaml")
	ctrl := &fakeController{cfg: sampleConfig(), err: loadErr}
	m, _ := newModel(t, ctrl)

	view := m.View()
	for _, want := range []string{"Configuration Error", "Invalid YAML", "ctrl+r reload", "ctrl+o edit config"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	// list keys are inert
	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	if cmd != nil || len(ctrl.opened) != 0 {
		t.Error("enter acted in the error state")
	}
	typeText(m, "git")
	if m.input.Value() != "" {
		t.Error("filter accepted input in the error state")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	run(t, m, cmd)
	if ctrl.edits != 1 {
		t.Errorf("edits = %v, want 1", ctrl.edits)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	run(t, m, cmd)
	if ctrl.reveals != 1 {
		t.Errorf("reveals = %v, want 1", ctrl.reveals)
	}

	// fixing the file and reloading recovers
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	run(t, m, cmd)
	if ctrl.reloads != 1 {
		t.Errorf("reloads = %v, want 1", ctrl.reloads)
	}
	if m.loadErr != nil || len(m.entries) != 3 {
		t.Errorf("after reload loadErr = %v, entries = %v", m.loadErr, len(m.entries))
	}
	if m.status.title != "Configuration Reloaded" || m.status.message != "Loaded 3 links" {
		t.Errorf("status = %+v", m.status)
	}
}

func TestWatcherReload(t *testing.T) {
	ctrl := &fakeController{cfg: sampleConfig()}
	m, _ := newModel(t, ctrl)

	broken := domain.Errorf(domain.KindConfigSchema, "Configuration Error", "Missing required field: groups")
	ctrl.err = broken
	m.Update(reloadedMsg{err: broken})
	if m.loadErr == nil {
		t.Fatal("error state not entered")
	}
	if m.status.title != "Configuration Error" {
		t.Errorf("status = %q", m.status.title)
	}

	ctrl.err = nil
	ctrl.cfg.Groups = ctrl.cfg.Groups[:1]
	m.Update(reloadedMsg{})
	if m.loadErr != nil || len(m.entries) != 2 {
		t.Errorf("after recovery loadErr = %v, entries = %v", m.loadErr, len(m.entries))
	}

	// a quiet reload keeps the previous status
	m.status = status{}
	m.Update(reloadedMsg{})
	if m.status.title != "" {
		t.Errorf("status = %q after a quiet reload", m.status.title)
	}
}

func TestNotice(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: sampleConfig()})

	m.Update(noticeMsg{title: "Could not open in Firefox", message: "Falling back to default browser..."})
	if !strings.Contains(m.View(), "Could not open in Firefox") {
		t.Error("notice not shown")
	}
	if m.lastNotice == nil {
		t.Error("notice not remembered")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, &fakeController{cfg: sampleConfig()})

	_, cmd := m.Update(keyMsg(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
}

func TestRelay_Fallback(t *testing.T) {
	var got []string
	r := NewRelay(notifierFunc(func(title, message string) {
		got = append(got, title+": "+message)
	}))

	r.Notify("Could not open in Arc", "Falling back to default browser...")
	if len(got) != 1 || got[0] != "Could not open in Arc: Falling back to default browser..." {
		t.Errorf("fallback got %q", got)
	}
}

type notifierFunc func(title, message string)

func (f notifierFunc) Notify(title, message string) { f(title, message) }
