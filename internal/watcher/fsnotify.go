package watcher

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FSNotifySource adapts fsnotify to Source. It watches the file itself,
// so a rename drops the watch until Add is called again.
type FSNotifySource struct {
	w      *fsnotify.Watcher
	events chan Event

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

// NewFSNotifySource starts an fsnotify watcher.
func NewFSNotifySource() (*FSNotifySource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	s := newSource()
	s.w = w
	go s.translate(w.Events)
	return s, nil
}

func newSource() *FSNotifySource {
	return &FSNotifySource{
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// translate forwards raw events until in closes or the source is closed.
// A closed source stops even when nobody drains Events any more.
func (s *FSNotifySource) translate(in <-chan fsnotify.Event) {
	defer close(s.exited)
	defer close(s.events)
	for ev := range in {
		var out Event
		switch {
		case ev.Has(fsnotify.Rename), ev.Has(fsnotify.Remove):
			out = Event{Kind: EventRename}
		case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
			out = Event{Kind: EventChange}
		default:
			continue
		}
		select {
		case s.events <- out:
		case <-s.done:
			return
		}
	}
}

func (s *FSNotifySource) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *FSNotifySource) Add(path string) error { return s.w.Add(path) }

func (s *FSNotifySource) Events() <-chan Event { return s.events }

func (s *FSNotifySource) Errors() <-chan error { return s.w.Errors }

func (s *FSNotifySource) Close() error {
	s.stop()
	return s.w.Close()
}
