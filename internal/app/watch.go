package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/golink/internal/utils"
	"github.com/MrSnakeDoc/golink/internal/watcher"
)

// Watch reloads the configuration whenever its file settles after a
// change, until ctx is cancelled. onReload, when set, receives the result
// of every reload.
func (a *App) Watch(ctx context.Context, onReload func(error)) error {
	src, err := watcher.NewFSNotifySource()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer utils.CloseLogged(src, a.logger, "file watcher")

	return a.watchWith(ctx, src, onReload)
}

func (a *App) watchWith(ctx context.Context, src watcher.Source, onReload func(error)) error {
	reload := watcher.ReloaderFunc(func(ctx context.Context) error {
		err := a.Reload(ctx)
		if onReload != nil {
			onReload(err)
		}
		return err
	})

	w := watcher.New(a.store.Path(), src, reload, a.logger,
		watcher.WithDelays(a.prefs.Debounce, a.prefs.RenameDelay))
	return w.Run(ctx)
}
