package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// UsageStat is the open history of one URL.
type UsageStat struct {
	URL        string
	Count      int64
	LastOpened time.Time
}

// IncrementUsage increments the open counter for url and stamps its last
// open time.
func (s *Store) IncrementUsage(ctx context.Context, url string) error {
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, KeyUsageCounts, url, 1)
	pipe.HSet(ctx, KeyUsageLastOpened, url, time.Now().Unix())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageCounts returns every counter keyed by URL.
func (s *Store) GetUsageCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, KeyUsageCounts).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage counts: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for url, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Skip counters that were not written by us
			continue
		}
		counts[url] = n
	}
	return counts, nil
}

// GetUsageStats returns usage for all URLs, most opened first.
func (s *Store) GetUsageStats(ctx context.Context) ([]UsageStat, error) {
	counts, err := s.GetUsageCounts(ctx)
	if err != nil {
		return nil, err
	}

	last, err := s.client.HGetAll(ctx, KeyUsageLastOpened).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get last opened times: %w", err)
	}

	stats := make([]UsageStat, 0, len(counts))
	for url, n := range counts {
		stat := UsageStat{URL: url, Count: n}
		if ts, err := strconv.ParseInt(last[url], 10, 64); err == nil {
			stat.LastOpened = time.Unix(ts, 0)
		}
		stats = append(stats, stat)
	}

	sortStats(stats)
	return stats, nil
}

// ResetUsage forgets the history of url, or of every link when url is empty.
func (s *Store) ResetUsage(ctx context.Context, url string) error {
	pipe := s.client.TxPipeline()
	if url == "" {
		pipe.Del(ctx, KeyUsageCounts, KeyUsageLastOpened)
	} else {
		pipe.HDel(ctx, KeyUsageCounts, url)
		pipe.HDel(ctx, KeyUsageLastOpened, url)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reset usage: %w", err)
	}
	return nil
}

func sortStats(stats []UsageStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].URL < stats[j].URL
	})
}
