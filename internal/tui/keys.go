package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the picker bindings. Printable keys belong to the filter
// input, so every action sits on a control or arrow key.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Open         key.Binding
	CopyURL      key.Binding
	CopyMarkdown key.Binding
	Reload       key.Binding
	EditConfig   key.Binding
	RevealConfig key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default picker bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy url"),
		),
		CopyMarkdown: key.NewBinding(
			key.WithKeys("alt+y"),
			key.WithHelp("alt+y", "copy markdown"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		EditConfig: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "edit config"),
		),
		RevealConfig: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "show config"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ListHelp is shown under the link list.
func (k KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Open, k.CopyURL, k.CopyMarkdown, k.Reload, k.EditConfig, k.Quit}
}

// ErrorHelp is shown in the configuration error state.
func (k KeyMap) ErrorHelp() []key.Binding {
	return []key.Binding{k.Reload, k.EditConfig, k.RevealConfig, k.Quit}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
