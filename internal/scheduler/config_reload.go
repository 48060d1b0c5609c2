package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// Loader reads the configuration from its source.
type Loader interface {
	Load() (*domain.Config, error)
}

// ConfigReloader loads the configuration into the index, on demand and
// whenever something sends on the manual trigger channel.
//
// Each reload takes a sequence number before loading; the index drops
// results older than the one it already holds.
type ConfigReloader struct {
	loader        Loader
	index         *index.MemoryIndex
	logger        logger.Logger
	seq           atomic.Uint64
	stopCh        chan struct{}
	manualTrigger chan struct{}
	onApplied     func(ctx context.Context, cfg *domain.Config)
}

// NewConfigReloader creates a new configuration reloader
func NewConfigReloader(
	loader Loader,
	idx *index.MemoryIndex,
	log logger.Logger,
	manualTrigger chan struct{},
) *ConfigReloader {
	return &ConfigReloader{
		loader:        loader,
		index:         idx,
		logger:        log,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once and then serves manual triggers until Stop or ctx ends.
// A failed initial load is kept in the index as the error state rather
// than returned.
func (cr *ConfigReloader) Start(ctx context.Context) {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Error("initial configuration load failed", logger.Error(err))
	}

	go func() {
		for {
			select {
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload configuration",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// OnApplied registers fn to run after each applied reload. Call before Start.
func (cr *ConfigReloader) OnApplied(fn func(ctx context.Context, cfg *domain.Config)) {
	cr.onApplied = fn
}

// Stop stops the reloader
func (cr *ConfigReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the configuration and applies it to the index.
func (cr *ConfigReloader) Reload(ctx context.Context) error {
	seq := cr.seq.Add(1)

	cfg, err := cr.loader.Load()
	if err != nil {
		cr.index.Fail(seq, err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !cr.index.Apply(seq, cfg) {
		cr.logger.Debug("dropped stale configuration reload", logger.Int64("seq", int64(seq)))
		return nil
	}

	cr.logger.Info("configuration loaded",
		logger.Int("groups", len(cfg.Groups)),
		logger.Int("links", cfg.LinkCount()))

	if cr.onApplied != nil {
		cr.onApplied(ctx, cfg)
	}

	return nil
}
