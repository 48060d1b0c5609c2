package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// UsageSource lists open counters keyed by URL.
type UsageSource interface {
	GetUsageCounts(ctx context.Context) (map[string]int64, error)
}

// UsageSyncer copies usage counters from Redis into memory so ranking
// does not hit Redis per request.
type UsageSyncer struct {
	store    UsageSource
	counts   *index.UsageCounts
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewUsageSyncer creates a new usage syncer
func NewUsageSyncer(
	store UsageSource,
	counts *index.UsageCounts,
	log logger.Logger,
	interval time.Duration,
) *UsageSyncer {
	return &UsageSyncer{
		store:    store,
		counts:   counts,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start syncs immediately, then every interval.
func (us *UsageSyncer) Start(ctx context.Context) {
	if err := us.Sync(ctx); err != nil {
		us.logger.Warn("initial usage sync failed", logger.Error(err))
	}

	ticker := time.NewTicker(us.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := us.Sync(ctx); err != nil {
					us.logger.Warn("usage sync failed", logger.Error(err))
				}
			case <-us.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the syncer
func (us *UsageSyncer) Stop() {
	close(us.stopCh)
}

// Sync loads counters from the store into memory.
func (us *UsageSyncer) Sync(ctx context.Context) error {
	counts, err := us.store.GetUsageCounts(ctx)
	if err != nil {
		return err
	}

	us.counts.Replace(counts)
	us.logger.Debug("synced usage counters", logger.Int("count", len(counts)))
	return nil
}
