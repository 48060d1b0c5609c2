package launcher

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Command is an external process invocation. Arguments are passed as a
// vector and never through a shell.
type Command struct {
	Name string
	Args []string
}

// String renders the command in shell form for logs and dry runs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, shellQuote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\$`&|;<>()*?[]{}!#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Runner executes a Command.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) error

func (f RunnerFunc) Run(ctx context.Context, cmd Command) error { return f(ctx, cmd) }

// ExecRunner starts commands as child processes. A process still running
// after Grace is left detached and counted as a success; browsers launched
// directly often keep running.
type ExecRunner struct {
	Grace time.Duration
}

func (r ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.Command(c.Name, c.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	grace := r.Grace
	if grace <= 0 {
		grace = 2 * time.Second
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("%s failed: %w: %s", c.Name, err, msg)
			}
			return fmt.Errorf("%s failed: %w", c.Name, err)
		}
		return nil
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
