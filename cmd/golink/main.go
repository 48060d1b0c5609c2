package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, formatError(err, ui.ShouldColorize(os.Stderr)))
		}
		stop()
		os.Exit(1)
	}
}

// formatError renders err as "title: message".
func formatError(err error, color bool) string {
	return ui.Notice(ui.ErrorStyle, domain.TitleOf(err), domain.MessageOf(err), color)
}
