package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/golink/internal/launcher"
)

// Relay is a launcher.Notifier that forwards notices to a running picker
// and to a fallback notifier otherwise.
type Relay struct {
	mu       sync.Mutex
	program  *tea.Program
	fallback launcher.Notifier
}

// NewRelay returns a Relay delivering to fallback while no picker runs.
func NewRelay(fallback launcher.Notifier) *Relay {
	return &Relay{fallback: fallback}
}

// Notify implements launcher.Notifier.
func (r *Relay) Notify(title, message string) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()

	if p != nil {
		p.Send(noticeMsg{title: title, message: message})
		return
	}
	if r.fallback != nil {
		r.fallback.Notify(title, message)
	}
}

func (r *Relay) attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

func (r *Relay) detach() {
	r.attach(nil)
}
