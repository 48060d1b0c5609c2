package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/logger"
	redisstore "github.com/MrSnakeDoc/golink/internal/store/redis"
)

const (
	// DefaultGCThreshold is how long counters of removed links survive
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// UsageHistory is the part of the usage store the collector prunes.
type UsageHistory interface {
	GetUsageStats(ctx context.Context) ([]redisstore.UsageStat, error)
	ResetUsage(ctx context.Context, url string) error
}

// GarbageCollector removes usage counters of links that are no longer in
// the configuration and have not been opened for longer than the threshold.
// A link removed by mistake and added back keeps its history in between.
type GarbageCollector struct {
	store     UsageHistory
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store UsageHistory,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start collects immediately, then every interval.
func (gc *GarbageCollector) Start(ctx context.Context) {
	if _, err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect prunes stale counters and returns how many were removed. It does
// nothing while the configuration is unloaded or invalid, since every
// counter would look orphaned.
func (gc *GarbageCollector) Collect(ctx context.Context) (int, error) {
	cfg, err := gc.index.Snapshot()
	if err != nil || cfg == nil {
		gc.logger.Debug("skipping garbage collection, no valid configuration")
		return 0, nil
	}

	live := make(map[string]bool, cfg.LinkCount())
	for _, e := range index.Flatten(cfg) {
		live[e.Link.URL] = true
	}

	stats, err := gc.store.GetUsageStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list usage: %w", err)
	}

	now := gc.now()
	deleted := 0
	for _, stat := range stats {
		if live[stat.URL] {
			continue
		}

		// Counters without a timestamp predate it and are always stale
		idle := now.Sub(stat.LastOpened)
		if !stat.LastOpened.IsZero() && idle < gc.threshold {
			continue
		}

		if err := gc.store.ResetUsage(ctx, stat.URL); err != nil {
			gc.logger.Warn("failed to delete usage counter",
				logger.String("url", stat.URL),
				logger.Error(err))
			continue
		}

		gc.logger.Info("garbage collected usage counter",
			logger.String("url", stat.URL),
			logger.Int64("count", stat.Count))
		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no usage counters to garbage collect")
	}
	return deleted, nil
}
