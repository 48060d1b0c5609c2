// Package app wires the configuration store, index, launcher and optional
// usage store together for the CLI, the picker and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/golink/internal/config"
	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/launcher"
	"github.com/MrSnakeDoc/golink/internal/linkform"
	"github.com/MrSnakeDoc/golink/internal/logger"
	"github.com/MrSnakeDoc/golink/internal/redis"
	"github.com/MrSnakeDoc/golink/internal/scheduler"
	"github.com/MrSnakeDoc/golink/internal/store/configfile"
	redisstore "github.com/MrSnakeDoc/golink/internal/store/redis"
	"github.com/MrSnakeDoc/golink/internal/utils"
)

// ErrUsageDisabled is returned by usage operations without a Redis address.
var ErrUsageDisabled = errors.New("usage tracking is disabled (set redis_addr)")

// App owns the current configuration and the components acting on it.
type App struct {
	prefs         *config.Config
	logger        logger.Logger
	store         *configfile.Store
	index         *index.MemoryIndex
	usage         *index.UsageCounts
	launcher      *launcher.Launcher
	reloader      *scheduler.ConfigReloader
	reloadTrigger chan struct{}

	redisClient *goredis.Client
	usageStore  *redisstore.Store
}

// Option customizes an App.
type Option func(*options)

type options struct {
	notifier     launcher.Notifier
	launcherOpts []launcher.Option
	storeOpts    []configfile.Option
}

// WithNotifier sets where launcher fallback notices go.
func WithNotifier(n launcher.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithLauncherOptions passes options to the browser launcher.
func WithLauncherOptions(opts ...launcher.Option) Option {
	return func(o *options) { o.launcherOpts = append(o.launcherOpts, opts...) }
}

// WithStoreOptions passes options to the configuration store.
func WithStoreOptions(opts ...configfile.Option) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

// New builds an App from preferences. Nothing is loaded and no connection
// is made until asked.
func New(prefs *config.Config, loggerClient logger.Logger, opts ...Option) *App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		prefs:         prefs,
		logger:        loggerClient,
		store:         configfile.New(prefs.ConfigPath, loggerClient, o.storeOpts...),
		index:         index.NewMemoryIndex(),
		usage:         index.NewUsageCounts(),
		reloadTrigger: make(chan struct{}, 1),
	}

	lopts := []launcher.Option{launcher.WithUsage(a)}
	if o.notifier != nil {
		lopts = append(lopts, launcher.WithNotifier(o.notifier))
	}
	a.launcher = launcher.New(loggerClient, append(lopts, o.launcherOpts...)...)
	a.reloader = scheduler.NewConfigReloader(a.store, a.index, loggerClient, a.reloadTrigger)
	a.reloader.OnApplied(a.invalidateResolutions)

	return a
}

// Prefs returns the preferences the App was built with.
func (a *App) Prefs() *config.Config { return a.prefs }

// ConfigPath returns the resolved links file path.
func (a *App) ConfigPath() string { return a.store.Path() }

// Store returns the configuration store.
func (a *App) Store() *configfile.Store { return a.store }

// Launcher returns the browser launcher.
func (a *App) Launcher() *launcher.Launcher { return a.launcher }

// OpenConfigFile opens the links file with the system handler.
func (a *App) OpenConfigFile(ctx context.Context) error {
	return a.launcher.OpenFile(ctx, a.ConfigPath())
}

// RevealConfigFile shows the links file in the system file manager.
func (a *App) RevealConfigFile(ctx context.Context) error {
	return a.launcher.RevealFile(ctx, a.ConfigPath())
}

// Reload reads the configuration from disk into the index. On failure the
// index holds the error until the next successful reload.
func (a *App) Reload(ctx context.Context) error {
	return a.reloader.Reload(ctx)
}

// Current returns the loaded configuration, or the load error.
func (a *App) Current() (*domain.Config, error) {
	cfg, err := a.index.Snapshot()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// Load reloads and returns the configuration.
func (a *App) Load(ctx context.Context) (*domain.Config, error) {
	if err := a.Reload(ctx); err != nil {
		return nil, unwrapLoad(err)
	}
	return a.Current()
}

// Search filters the loaded links by query.
func (a *App) Search(query string) []index.Entry {
	return a.index.Search(query)
}

// Best returns the highest ranked entry for query.
func (a *App) Best(query string) (index.Entry, bool) {
	return a.index.Best(query, a.usage.ForLink)
}

// Open opens an entry with its resolved browser and profile.
func (a *App) Open(ctx context.Context, e index.Entry) error {
	cfg, err := a.Current()
	if err != nil {
		return err
	}
	return a.launcher.Open(ctx, launcher.ResolveTarget(e.Link, cfg))
}

// AddLink validates v and appends the link, creating its group if asked.
func (a *App) AddLink(ctx context.Context, v linkform.Values) (domain.Link, error) {
	sub, err := v.Build(linkform.ModeCreate)
	if err != nil {
		return domain.Link{}, err
	}
	if err := a.store.AddLink(sub.GroupName, sub.Link, sub.NewGroupTitle); err != nil {
		return domain.Link{}, err
	}
	a.reloadAfterWrite(ctx)
	return sub.Link, nil
}

// EditLink validates v and replaces the link identified by originalURL in
// group v.Group.
func (a *App) EditLink(ctx context.Context, originalURL string, v linkform.Values) (domain.Link, error) {
	sub, err := v.Build(linkform.ModeEdit)
	if err != nil {
		return domain.Link{}, err
	}
	if err := a.store.UpdateLink(sub.GroupName, originalURL, sub.Link); err != nil {
		return domain.Link{}, err
	}
	a.reloadAfterWrite(ctx)
	return sub.Link, nil
}

// PreviewAdd renders the file before and after AddLink without writing.
func (a *App) PreviewAdd(v linkform.Values) (before, after []byte, err error) {
	sub, err := v.Build(linkform.ModeCreate)
	if err != nil {
		return nil, nil, err
	}
	return a.store.Preview(configfile.AddLinkMutation(sub.GroupName, sub.Link, sub.NewGroupTitle))
}

// PreviewEdit renders the file before and after EditLink without writing.
func (a *App) PreviewEdit(originalURL string, v linkform.Values) (before, after []byte, err error) {
	sub, err := v.Build(linkform.ModeEdit)
	if err != nil {
		return nil, nil, err
	}
	return a.store.Preview(configfile.UpdateLinkMutation(sub.GroupName, originalURL, sub.Link))
}

// ImportGroups merges imported groups into the configuration file. Links
// already present in their group are skipped and nothing is written when
// no link is new.
func (a *App) ImportGroups(ctx context.Context, groups []domain.Group) (configfile.MergeResult, error) {
	var res configfile.MergeResult
	err := a.store.Apply(configfile.MergeMutation(groups, &res))
	switch {
	case errors.Is(err, configfile.ErrNothingToMerge):
		return res, nil
	case err != nil:
		return res, err
	}
	a.reloadAfterWrite(ctx)
	return res, nil
}

// PreviewImport renders the file before and after ImportGroups without
// writing. before and after are nil when nothing would change.
func (a *App) PreviewImport(groups []domain.Group) (before, after []byte, res configfile.MergeResult, err error) {
	before, after, err = a.store.Preview(configfile.MergeMutation(groups, &res))
	if errors.Is(err, configfile.ErrNothingToMerge) {
		return nil, nil, res, nil
	}
	return before, after, res, err
}

func (a *App) reloadAfterWrite(ctx context.Context) {
	if err := a.Reload(ctx); err != nil {
		a.logger.Warn("reload after write failed", logger.Error(err))
	}
}

// ConnectUsage connects to Redis when configured. Without a Redis address
// it returns ErrUsageDisabled and the App keeps counting in memory only.
func (a *App) ConnectUsage(ctx context.Context) error {
	if !a.prefs.UsageEnabled() {
		return ErrUsageDisabled
	}
	if a.usageStore != nil {
		return nil
	}

	opts := redis.DefaultConnectOptions(a.prefs.RedisAddr)
	opts.Password = a.prefs.RedisPassword
	opts.DB = a.prefs.RedisDB
	opts.ConnectTimeout = a.prefs.RedisConnectTimeout

	client, err := redis.Connect(ctx, opts, a.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	a.redisClient = client
	a.usageStore = redisstore.NewStore(client)
	return nil
}

// IncrementUsage counts an open in memory and, when connected, in Redis.
func (a *App) IncrementUsage(ctx context.Context, url string) error {
	a.usage.Increment(url)
	if a.usageStore == nil {
		return nil
	}
	return a.usageStore.IncrementUsage(ctx, url)
}

// Stats returns usage counters, most opened first.
func (a *App) Stats(ctx context.Context) ([]redisstore.UsageStat, error) {
	if a.usageStore == nil {
		return nil, ErrUsageDisabled
	}
	return a.usageStore.GetUsageStats(ctx)
}

// ResetUsage clears the counter of url, or all counters when url is empty.
func (a *App) ResetUsage(ctx context.Context, url string) error {
	if a.usageStore == nil {
		return ErrUsageDisabled
	}
	return a.usageStore.ResetUsage(ctx, url)
}

// SyncUsage copies Redis counters into memory for ranking.
func (a *App) SyncUsage(ctx context.Context) error {
	if a.usageStore == nil {
		return nil
	}
	return scheduler.NewUsageSyncer(a.usageStore, a.usage, a.logger, a.prefs.UsageSyncInterval).Sync(ctx)
}

// PruneUsage drops counters of links removed from the configuration more
// than usage_retention ago. The configuration must be loaded.
func (a *App) PruneUsage(ctx context.Context) (int, error) {
	if a.usageStore == nil {
		return 0, ErrUsageDisabled
	}
	if _, err := a.Current(); err != nil {
		return 0, err
	}
	return a.garbageCollector().Collect(ctx)
}

func (a *App) garbageCollector() *scheduler.GarbageCollector {
	return scheduler.NewGarbageCollector(a.usageStore, a.index, a.logger, a.prefs.UsageGCInterval, a.prefs.UsageRetention)
}

func (a *App) invalidateResolutions(ctx context.Context, _ *domain.Config) {
	if a.usageStore == nil {
		return
	}
	if err := a.usageStore.InvalidateResolutions(ctx); err != nil {
		a.logger.Warn("failed to invalidate cached resolutions", logger.Error(err))
	}
}

// Close releases the Redis connection, if any.
func (a *App) Close() {
	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "redis")
		a.redisClient = nil
		a.usageStore = nil
	}
}

// unwrapLoad strips the reloader's wrapping so callers see the typed
// configuration error first.
func unwrapLoad(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return err
}
