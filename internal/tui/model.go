// Package tui is the interactive link picker: a filter input over the
// loaded links that opens, copies and reloads without leaving the terminal.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/icons"
	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/launcher"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

// defaultListHeight is used until the terminal reports its size.
const defaultListHeight = 20

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.Primary)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(ui.Muted)
)

// Controller is what the picker needs from the application.
type Controller interface {
	Search(query string) []index.Entry
	Current() (*domain.Config, error)
	Open(ctx context.Context, e index.Entry) error
	Reload(ctx context.Context) error
	OpenConfigFile(ctx context.Context) error
	RevealConfigFile(ctx context.Context) error
	ConfigPath() string
}

// reloadedMsg carries the result of a reload. manual is set for reloads
// the user asked for.
type reloadedMsg struct {
	err    error
	manual bool
}

// noticeMsg is a launcher notice, typically the fallback warning.
type noticeMsg struct {
	title   string
	message string
}

// actionMsg reports a finished action.
type actionMsg struct {
	title   string
	message string
	err     error
	quit    bool
}

type status struct {
	style   lipgloss.Style
	title   string
	message string
}

// Model is the picker state.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	keys     KeyMap
	input    textinput.Model
	copyText func(string) error
	relay    *Relay

	cfg     *domain.Config
	loadErr error
	entries []index.Entry
	cursor  int

	status     status
	lastNotice *noticeMsg
	width      int
	height     int
	quitting   bool
}

// Option customizes a Model.
type Option func(*Model)

// WithQuery pre-fills the filter.
func WithQuery(q string) Option {
	return func(m *Model) { m.input.SetValue(q) }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyText = fn }
}

// WithRelay routes launcher notices into the picker while it runs.
func WithRelay(r *Relay) Option {
	return func(m *Model) { m.relay = r }
}

// New builds a picker over the controller's current configuration.
func New(ctx context.Context, ctrl Controller, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter links..."
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 50

	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		keys:     DefaultKeyMap(),
		input:    ti,
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.input.Focus()
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Selected returns the entry under the cursor.
func (m *Model) Selected() (index.Entry, bool) {
	if m.loadErr != nil || m.cursor < 0 || m.cursor >= len(m.entries) {
		return index.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// refresh re-reads the configuration and re-applies the filter.
func (m *Model) refresh() {
	cfg, err := m.ctrl.Current()
	m.cfg, m.loadErr = cfg, err
	if err != nil {
		m.entries = nil
		m.cursor = 0
		return
	}

	m.entries = m.ctrl.Search(m.input.Value())
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(style lipgloss.Style, title, message string) {
	m.status = status{style: style, title: title, message: message}
}

func (m *Model) setError(err error) {
	m.setStatus(ui.ErrorStyle, domain.TitleOf(err), domain.MessageOf(err))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 8 {
			m.input.Width = msg.Width - 6
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case reloadedMsg:
		recovered := m.loadErr != nil
		m.refresh()
		switch {
		case msg.err != nil:
			m.setError(msg.err)
		case m.cfg != nil && (msg.manual || recovered):
			m.setStatus(ui.SuccessStyle, "Configuration Reloaded",
				fmt.Sprintf("Loaded %d links", m.cfg.LinkCount()))
		}
		return m, nil

	case noticeMsg:
		m.lastNotice = &msg
		m.setStatus(ui.WarningStyle, msg.title, msg.message)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.setStatus(ui.SuccessStyle, msg.title, msg.message)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Available in every state.
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()
	case key.Matches(msg, m.keys.EditConfig):
		return m, m.actionCmd(m.ctrl.OpenConfigFile, "Opened Configuration", m.ctrl.ConfigPath())
	case key.Matches(msg, m.keys.RevealConfig):
		return m, m.actionCmd(m.ctrl.RevealConfigFile, "Revealed Configuration", m.ctrl.ConfigPath())
	}

	if m.loadErr != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.listHeight())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.listHeight())
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if e, ok := m.Selected(); ok {
			return m, m.openCmd(e)
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyURL):
		if e, ok := m.Selected(); ok {
			m.copy(e.Link.URL, "Copied URL")
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyMarkdown):
		if e, ok := m.Selected(); ok {
			m.copy(fmt.Sprintf("[%s](%s)", e.Link.Title, e.Link.URL), "Copied as Markdown")
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
}

func (m *Model) copy(text, title string) {
	if err := m.copyText(text); err != nil {
		m.setStatus(ui.ErrorStyle, "Copy Failed", err.Error())
		return
	}
	m.setStatus(ui.SuccessStyle, title, text)
}

func (m *Model) reloadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return reloadedMsg{err: ctrl.Reload(ctx), manual: true}
	}
}

func (m *Model) openCmd(e index.Entry) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		if err := ctrl.Open(ctx, e); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{quit: true}
	}
}

func (m *Model) actionCmd(fn func(context.Context) error, title, message string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{title: title, message: message}
	}
}

func (m *Model) listHeight() int {
	if m.height <= 0 {
		return defaultListHeight
	}
	// header, input, status and help lines
	if h := m.height - 7; h > 1 {
		return h
	}
	return 1
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("golink"))
	b.WriteString(" ")
	b.WriteString(ui.MutedStyle.Render("Config: " + filepath.Base(m.ctrl.ConfigPath())))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	help := m.keys.ListHelp()
	switch {
	case m.loadErr != nil:
		b.WriteString(m.errorView())
		help = m.keys.ErrorHelp()
	case len(m.entries) == 0:
		b.WriteString(m.emptyView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	if m.status.title != "" {
		b.WriteString(ui.Notice(m.status.style, m.status.title, m.status.message, true))
		b.WriteString("\n")
	}
	b.WriteString(ui.MutedStyle.Render(renderHelp(help)))
	return b.String()
}

func (m *Model) errorView() string {
	return ui.ErrorStyle.Render("✖ "+domain.TitleOf(m.loadErr)) + "\n" +
		domain.MessageOf(m.loadErr) + "\n" +
		ui.MutedStyle.Render(m.ctrl.ConfigPath()) + "\n"
}

func (m *Model) emptyView() string {
	desc := "No links configured"
	if q := m.input.Value(); q != "" {
		desc = fmt.Sprintf("No links match %q", q)
	}
	return ui.WarningStyle.Render("No Links Found") + "\n" + ui.MutedStyle.Render(desc) + "\n"
}

func (m *Model) listView() string {
	var (
		lines      []string
		cursorLine int
		group      string
	)

	favicons := m.cfg.FaviconsEnabled()
	for i, e := range m.entries {
		if i == 0 || e.GroupName != group {
			group = e.GroupName
			lines = append(lines, sectionStyle.Render(e.GroupTitle))
		}
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.row(e, i == m.cursor, favicons))
	}

	height := m.listHeight()
	start := 0
	if cursorLine >= height {
		start = cursorLine - height + 1
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n") + "\n"
}

func (m *Model) row(e index.Entry, selected bool, favicons bool) string {
	prefix := "  "
	title := e.Link.Title
	if selected {
		prefix = "> "
		title = selectedStyle.Render(title)
	}

	parts := []string{
		prefix + icons.ForLink(e.Link, favicons).Glyph() + " " + title,
		ui.MutedStyle.Render(e.Link.URL),
	}

	target := launcher.ResolveTarget(e.Link, m.cfg)
	if target.Application != "" {
		parts = append(parts, ui.AccessoryStyle.Render(launcher.ShortName(target.Application)))
	}
	if target.Profile != "" {
		parts = append(parts, ui.AccessoryStyle.Render(target.Profile))
	}
	return strings.Join(parts, "  ")
}
