package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// App is a Controller that can also watch its configuration file.
type App interface {
	Controller
	Watch(ctx context.Context, onReload func(error)) error
}

// Run shows the picker until the user opens a link or quits. The
// configuration file is watched meanwhile and reloads show up live.
func Run(ctx context.Context, a App, opts ...Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, a, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if m.relay != nil {
		m.relay.attach(p)
		defer m.relay.detach()
	}

	go func() {
		err := a.Watch(ctx, func(err error) {
			p.Send(reloadedMsg{err: err})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			p.Send(noticeMsg{title: "Watch Failed", message: err.Error()})
		}
	}()

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run picker: %w", err)
	}

	// The picker closes right after a fallback open, so repeat its notice.
	if fm, ok := final.(*Model); ok && fm.lastNotice != nil && m.relay != nil {
		m.relay.detach()
		m.relay.Notify(fm.lastNotice.title, fm.lastNotice.message)
	}
	return nil
}
