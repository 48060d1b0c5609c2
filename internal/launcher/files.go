package launcher

import (
	"context"
	"path/filepath"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// OpenFile opens path with the application registered for it.
func (l *Launcher) OpenFile(ctx context.Context, path string) error {
	cmd := l.systemDefault(path)
	l.log.Debug("opening file", logger.String("command", cmd.String()))
	if err := l.runner.Run(ctx, cmd); err != nil {
		return domain.Wrap(domain.KindLaunch, "Failed to Open", "Could not open "+path, err)
	}
	return nil
}

// RevealFile shows path in the platform file manager. Linux has no common
// select-in-folder call, so the containing directory is opened instead.
func (l *Launcher) RevealFile(ctx context.Context, path string) error {
	cmd := l.RevealCommand(path)
	l.log.Debug("revealing file", logger.String("command", cmd.String()))
	if err := l.runner.Run(ctx, cmd); err != nil {
		return domain.Wrap(domain.KindLaunch, "Failed to Reveal", "Could not show "+path, err)
	}
	return nil
}

// RevealCommand returns the process RevealFile runs.
func (l *Launcher) RevealCommand(path string) Command {
	switch l.goos {
	case "darwin":
		return Command{Name: "open", Args: []string{"-R", path}}
	case "windows":
		return Command{Name: "explorer", Args: []string{"/select," + path}}
	default:
		return Command{Name: "xdg-open", Args: []string{filepath.Dir(path)}}
	}
}
