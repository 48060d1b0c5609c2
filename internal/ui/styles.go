// Package ui renders CLI output: tables, highlighted configuration files,
// diffs and notices.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Colors
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
	Accent  = lipgloss.Color("#06B6D4") // Cyan
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Error)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	AccessoryStyle = lipgloss.NewStyle().
			Foreground(Accent)

	InsertStyle = lipgloss.NewStyle().Foreground(Success)
	DeleteStyle = lipgloss.NewStyle().Foreground(Error)
)

// ShouldColorize reports whether w is a terminal and NO_COLOR is unset.
func ShouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Notice renders a "title: message" line, styled when color is set.
func Notice(style lipgloss.Style, title, message string, color bool) string {
	if color {
		title = style.Render(title)
	}
	if message == "" {
		return title
	}
	return title + ": " + message
}
