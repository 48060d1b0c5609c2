// Package launcher opens links in the system browser or a specific
// browser profile, falling back to the system default once on failure.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// FallbackMessage accompanies the notice sent before falling back.
const FallbackMessage = "Falling back to default browser..."

// Target is what to open and where.
type Target struct {
	Application string
	Profile     string
	URL         string
}

// ResolveTarget applies the link's overrides over the configured defaults.
// A default browser of "default" means the system browser.
func ResolveTarget(link domain.Link, cfg *domain.Config) Target {
	t := Target{
		Application: link.Application,
		Profile:     link.Profile,
		URL:         link.URL,
	}
	if t.Application == "" {
		if b := cfg.DefaultBrowser(); b != "default" {
			t.Application = b
		}
	}
	if t.Profile == "" {
		t.Profile = cfg.DefaultProfile()
	}
	return t
}

// Label is the action title for t, e.g. "Open in Firefox (Work)".
func (t Target) Label() string {
	switch {
	case t.Application != "" && t.Profile != "":
		return fmt.Sprintf("Open in %s (%s)", t.Application, t.Profile)
	case t.Application != "":
		return "Open in " + t.Application
	default:
		return "Open in Browser"
	}
}

func (t Target) failureTitle() string {
	if t.Profile != "" {
		return fmt.Sprintf("Could not open in %s (%s)", t.Application, t.Profile)
	}
	return "Could not open in " + t.Application
}

// Strategy is one way of opening a URL.
type Strategy int

const (
	StrategySystemDefault Strategy = iota
	StrategyOpenWithApp
	StrategyProfileCommand
)

func (s Strategy) String() string {
	switch s {
	case StrategyOpenWithApp:
		return "open-with-app"
	case StrategyProfileCommand:
		return "profile-command"
	default:
		return "system-default"
	}
}

// Plan lists strategies in the order they are tried. A profile without an
// application is ignored.
func Plan(t Target) []Strategy {
	switch {
	case t.Application == "":
		return []Strategy{StrategySystemDefault}
	case t.Profile == "":
		return []Strategy{StrategyOpenWithApp, StrategySystemDefault}
	default:
		return []Strategy{StrategyProfileCommand, StrategySystemDefault}
	}
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// UsageRecorder counts successful opens.
type UsageRecorder interface {
	IncrementUsage(ctx context.Context, url string) error
}

// Launcher builds and runs open commands for the current platform.
type Launcher struct {
	runner    Runner
	notifier  Notifier
	usage     UsageRecorder
	log       logger.Logger
	goos      string
	stateRoot string
	lookPath  func(string) (string, bool)
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithRunner replaces process execution.
func WithRunner(r Runner) Option { return func(l *Launcher) { l.runner = r } }

// WithNotifier sets where fallback notices go.
func WithNotifier(n Notifier) Option { return func(l *Launcher) { l.notifier = n } }

// WithUsage records successful opens.
func WithUsage(u UsageRecorder) Option { return func(l *Launcher) { l.usage = u } }

// WithPlatform overrides GOOS and the browser state root.
func WithPlatform(goos, stateRoot string) Option {
	return func(l *Launcher) {
		l.goos = goos
		l.stateRoot = stateRoot
	}
}

// WithLookPath replaces binary discovery.
func WithLookPath(fn func(string) (string, bool)) Option {
	return func(l *Launcher) { l.lookPath = fn }
}

// New returns a Launcher for the running platform.
func New(log logger.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		runner:   ExecRunner{},
		notifier: NotifierFunc(func(string, string) {}),
		log:      log,
		goos:     runtime.GOOS,
		lookPath: findBinary,
	}
	l.stateRoot = defaultStateRoot(l.goos)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open runs the first planned strategy and, when it fails, notifies and
// falls back to the system default exactly once.
func (l *Launcher) Open(ctx context.Context, t Target) error {
	log := l.log.With(logger.String("launch_id", uuid.NewString()))
	plan := Plan(t)

	firstErr := l.attempt(ctx, log, plan[0], t)
	if firstErr == nil {
		l.recordUsage(ctx, log, t)
		return nil
	}

	if len(plan) == 1 {
		return domain.Wrap(domain.KindLaunch, "Failed to Open", "Could not open "+t.URL, firstErr)
	}

	log.Warn("open failed, falling back to system browser",
		logger.String("strategy", plan[0].String()),
		logger.String("application", t.Application),
		logger.String("profile", t.Profile),
		logger.Error(firstErr),
	)
	l.notifier.Notify(t.failureTitle(), FallbackMessage)

	if err := l.attempt(ctx, log, plan[1], t); err != nil {
		return domain.Wrap(domain.KindLaunch, "Failed to Open", "Could not open "+t.URL, errors.Join(firstErr, err))
	}
	l.recordUsage(ctx, log, t)
	return nil
}

// Command returns the process a strategy would run.
func (l *Launcher) Command(s Strategy, t Target) Command {
	switch s {
	case StrategyOpenWithApp:
		return l.openWithApp(t)
	case StrategyProfileCommand:
		return l.profileCommand(t)
	default:
		return l.systemDefault(t.URL)
	}
}

func (l *Launcher) attempt(ctx context.Context, log logger.Logger, s Strategy, t Target) error {
	cmd := l.Command(s, t)
	log.Debug("launching",
		logger.String("strategy", s.String()),
		logger.String("command", cmd.String()),
	)
	return l.runner.Run(ctx, cmd)
}

func (l *Launcher) recordUsage(ctx context.Context, log logger.Logger, t Target) {
	if l.usage == nil {
		return
	}
	if err := l.usage.IncrementUsage(ctx, t.URL); err != nil {
		log.Debug("usage not recorded", logger.Error(err))
	}
}

func (l *Launcher) systemDefault(url string) Command {
	switch l.goos {
	case "darwin":
		return Command{Name: "open", Args: []string{url}}
	case "windows":
		return Command{Name: "rundll32", Args: []string{"url.dll,FileProtocolHandler", url}}
	default:
		return Command{Name: "xdg-open", Args: []string{url}}
	}
}

func (l *Launcher) openWithApp(t Target) Command {
	switch l.goos {
	case "darwin":
		return Command{Name: "open", Args: []string{"-a", AppName(t.Application), t.URL}}
	case "windows":
		return Command{Name: "cmd", Args: []string{"/C", "start", "", l.binaryFor(t.Application), t.URL}}
	default:
		return Command{Name: l.binaryFor(t.Application), Args: []string{t.URL}}
	}
}

func (l *Launcher) profileCommand(t Target) Command {
	args := append(l.profileArgs(t.Application, t.Profile), t.URL)

	if b, ok := Lookup(t.Application); ok {
		if bin := b.Binaries[l.goos]; bin != "" {
			if path, found := l.lookPath(bin); found {
				return Command{Name: path, Args: args}
			}
		}
	}

	if l.goos == "darwin" {
		return Command{Name: "open", Args: append([]string{"-a", AppName(t.Application), "--args"}, args...)}
	}
	return Command{Name: l.binaryFor(t.Application), Args: args}
}

func (l *Launcher) profileArgs(app, profile string) []string {
	switch FamilyOf(app) {
	case FamilyChromium:
		return []string{"--profile-directory=" + l.ResolveProfileDirectory(app, profile)}
	case FamilyFirefox:
		return []string{"-P", profile}
	default:
		return []string{"--profile-directory=" + profile}
	}
}

// binaryFor names the executable for app on platforms without `open -a`.
func (l *Launcher) binaryFor(app string) string {
	if b, ok := Lookup(app); ok {
		if bin := b.Binaries[l.goos]; bin != "" {
			return bin
		}
	}
	return app
}

// findBinary accepts absolute paths that exist and bare names on PATH.
func findBinary(bin string) (string, bool) {
	if filepath.IsAbs(bin) {
		_, err := os.Stat(bin)
		return bin, err == nil
	}
	path, err := exec.LookPath(bin)
	return path, err == nil
}
