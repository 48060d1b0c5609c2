package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/golink/internal/app"
	"github.com/MrSnakeDoc/golink/internal/config"
	"github.com/MrSnakeDoc/golink/internal/logger"
	"github.com/MrSnakeDoc/golink/internal/tui"
	"github.com/MrSnakeDoc/golink/internal/ui"
)

type commandContext struct {
	settingsFlag *string
	configFlag   *string
	logLevelFlag *string
	appOpts      []app.Option

	prefsOnce      sync.Once
	prefs          *config.Config
	settingsPath   string
	settingsExists bool
	prefsErr       error

	app   *app.App
	log   logger.Logger
	relay *tui.Relay
}

func newCommandContext(settingsFlag, configFlag, logLevelFlag *string, opts []app.Option) *commandContext {
	return &commandContext{
		settingsFlag: settingsFlag,
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		appOpts:      opts,
	}
}

// ensurePrefs loads preferences once and applies the global flags.
func (c *commandContext) ensurePrefs() (*config.Config, error) {
	c.prefsOnce.Do(func() {
		prefs, resolved, exists, err := config.Load(strings.TrimSpace(*c.settingsFlag))
		if err != nil {
			c.prefsErr = fmt.Errorf("failed to load settings: %w", err)
			return
		}

		if p := strings.TrimSpace(*c.configFlag); p != "" {
			expanded, err := config.ExpandPath(p)
			if err != nil {
				c.prefsErr = err
				return
			}
			prefs.ConfigPath = expanded
		}
		if lvl := strings.TrimSpace(*c.logLevelFlag); lvl != "" {
			prefs.LogLevel = lvl
		}
		if err := prefs.Validate(); err != nil {
			c.prefsErr = err
			return
		}

		c.prefs = prefs
		c.settingsPath = resolved
		c.settingsExists = exists
	})
	return c.prefs, c.prefsErr
}

// application builds the App on first use. defaultLevel applies when
// neither the settings nor the flags set a log level.
func (c *commandContext) application(cmd *cobra.Command, defaultLevel string) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	prefs, err := c.ensurePrefs()
	if err != nil {
		return nil, err
	}

	level := prefs.LogLevel
	if level == "" {
		level = defaultLevel
	}
	c.log = logger.New(level, prefs.PrettyLog)

	stderr := cmd.ErrOrStderr()
	c.relay = tui.NewRelay(cliNotifier{w: stderr, color: ui.ShouldColorize(stderr)})

	opts := append([]app.Option{app.WithNotifier(c.relay)}, c.appOpts...)
	c.app = app.New(prefs, c.log, opts...)
	return c.app, nil
}

// loadedApplication builds the App and loads the links file.
func (c *commandContext) loadedApplication(cmd *cobra.Command) (*app.App, error) {
	a, err := c.application(cmd, "warn")
	if err != nil {
		return nil, err
	}
	if _, err := a.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return a, nil
}

// connectUsage connects the usage store when one is configured. Failures
// only cost usage counting, so they are logged and ignored.
func (c *commandContext) connectUsage(ctx context.Context, a *app.App) {
	err := a.ConnectUsage(ctx)
	switch {
	case err == nil:
		if err := a.SyncUsage(ctx); err != nil {
			c.log.Warn("failed to sync usage counters", logger.Error(err))
		}
	case errors.Is(err, app.ErrUsageDisabled):
	default:
		c.log.Warn("usage tracking unavailable", logger.Error(err))
	}
}

// cliNotifier prints launcher notices to stderr.
type cliNotifier struct {
	w     io.Writer
	color bool
}

func (n cliNotifier) Notify(title, message string) {
	fmt.Fprintln(n.w, ui.Notice(ui.WarningStyle, title, message, n.color))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
