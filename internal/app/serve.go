package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/MrSnakeDoc/golink/internal/httpserver"
	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/golink/internal/logger"
	"github.com/MrSnakeDoc/golink/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/golink/internal/store/redis"
	"github.com/MrSnakeDoc/golink/internal/version"
)

// Deps returns the dependencies handed to the HTTP handlers.
func (a *App) Deps() deps.Deps {
	d := deps.Deps{
		Logger:          a.logger,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    a.prefs.AllowedHosts,
		AllowedCIDRS:    a.prefs.AllowedCIDRS,
		TrustProxy:      a.prefs.TrustProxy,
		RateLimitBurst:  a.prefs.RateLimitBurst,
		RateLimitPerMin: a.prefs.RateLimitPerMin,
		ConfigPath:      a.store.Path(),
		Index:           a.index,
		Usage:           a.usage,
		CacheTTL:        redisstore.DefaultCacheTTL,
		ReloadTrigger:   a.reloadTrigger,
	}
	// a nil *Store must not become a non-nil interface
	if a.usageStore != nil {
		d.Store = a.usageStore
	}
	return d
}

// Serve runs the go-link server until ctx is cancelled: initial load,
// file watching, manual reloads, usage sync and the HTTP listener.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.prefs.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.prefs.ListenAddr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	a.logger.Infof("Starting %s on %s", version.String(), ln.Addr())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.ConnectUsage(ctx); err != nil {
		if errors.Is(err, ErrUsageDisabled) {
			a.logger.Info("redis not configured, usage ranking kept in memory")
		} else {
			a.logger.Warn("usage tracking unavailable", logger.Error(err))
		}
	}
	defer a.Close()

	// a broken file leaves the server up in its error state
	a.reloader.Start(ctx)

	var (
		syncer *scheduler.UsageSyncer
		gc     *scheduler.GarbageCollector
	)
	if a.usageStore != nil {
		syncer = scheduler.NewUsageSyncer(a.usageStore, a.usage, a.logger, a.prefs.UsageSyncInterval)
		syncer.Start(ctx)
		a.logger.Info("usage syncer started",
			logger.Duration("interval", a.prefs.UsageSyncInterval))

		gc = a.garbageCollector()
		gc.Start(ctx)
		a.logger.Info("usage garbage collector started",
			logger.Duration("interval", a.prefs.UsageGCInterval),
			logger.Duration("retention", a.prefs.UsageRetention))
	}

	go func() {
		if err := a.Watch(ctx, nil); err != nil {
			a.logger.Warn("file watching disabled", logger.Error(err))
		}
	}()

	server := httpserver.New(ln.Addr().String(), a.logger, a.Deps())

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	if syncer != nil {
		syncer.Stop()
	}
	if gc != nil {
		gc.Stop()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.prefs.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("golink stopped cleanly")
	return nil
}
