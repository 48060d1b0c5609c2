// Package watcher reloads the configuration when its file changes.
//
// Change events are debounced; a rename or removal (editors that save by
// replacing the file) schedules a delayed reload and then re-establishes
// the watch if the file is back.
package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/MrSnakeDoc/golink/internal/logger"
)

const (
	DefaultDebounce    = 300 * time.Millisecond
	DefaultRenameDelay = 500 * time.Millisecond
)

// EventKind classifies a file system notification.
type EventKind int

const (
	EventChange EventKind = iota
	EventRename
)

// Event is a notification about the watched file.
type Event struct {
	Kind EventKind
}

// Source delivers events for watched paths.
type Source interface {
	Add(path string) error
	Events() <-chan Event
	Errors() <-chan error
	Close() error
}

// Reloader is called when the file settled after a change.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func(ctx context.Context) error

func (f ReloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

// State is the watcher's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateWatching
	StateDebouncing
)

func (s State) String() string {
	switch s {
	case StateWatching:
		return "watching"
	case StateDebouncing:
		return "debouncing"
	default:
		return "idle"
	}
}

// Watcher drives reloads from a Source.
type Watcher struct {
	path        string
	source      Source
	reloader    Reloader
	logger      logger.Logger
	debounce    time.Duration
	renameDelay time.Duration
	exists      func(string) bool

	mu    sync.Mutex
	state State
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDelays overrides the debounce window and the rename recovery delay.
func WithDelays(debounce, renameDelay time.Duration) Option {
	return func(w *Watcher) {
		if debounce > 0 {
			w.debounce = debounce
		}
		if renameDelay > 0 {
			w.renameDelay = renameDelay
		}
	}
}

// New creates a Watcher for path.
func New(path string, source Source, reloader Reloader, log logger.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		path:        path,
		source:      source,
		reloader:    reloader,
		logger:      log,
		debounce:    DefaultDebounce,
		renameDelay: DefaultRenameDelay,
		exists:      fileExists,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Run watches until ctx is cancelled or the source closes.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.source.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.setState(StateWatching)
	defer w.setState(StateIdle)

	w.logger.Debug("watching configuration", logger.String("path", w.path))

	debounce := newStoppedTimer()
	rename := newStoppedTimer()
	defer debounce.Stop()
	defer rename.Stop()

	errs := w.source.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.source.Events():
			if !ok {
				return nil
			}
			switch ev.Kind {
			case EventChange:
				resetTimer(debounce, w.debounce)
				w.setState(StateDebouncing)
			case EventRename:
				stopTimer(debounce)
				resetTimer(rename, w.renameDelay)
				w.setState(StateWatching)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Warn("watch error", logger.Error(err))

		case <-debounce.C:
			w.setState(StateWatching)
			w.reload(ctx, "change")

		case <-rename.C:
			w.reload(ctx, "rename")
			if w.exists(w.path) {
				if err := w.source.Add(w.path); err != nil {
					w.logger.Warn("failed to re-watch configuration",
						logger.String("path", w.path),
						logger.Error(err))
				}
			}
		}
	}
}

func (w *Watcher) reload(ctx context.Context, cause string) {
	if err := w.reloader.Reload(ctx); err != nil {
		w.logger.Warn("reload after file event failed",
			logger.String("cause", cause),
			logger.Error(err))
	}
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

// stopTimer stops t and drains a fired but unread tick.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
