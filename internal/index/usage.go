package index

import (
	"sync"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

// UsageCounts caches open counters keyed by link URL.
type UsageCounts struct {
	mu     sync.RWMutex
	counts map[string]int64
}

// NewUsageCounts creates an empty cache
func NewUsageCounts() *UsageCounts {
	return &UsageCounts{counts: make(map[string]int64)}
}

// Replace swaps in a full set of counters.
func (u *UsageCounts) Replace(counts map[string]int64) {
	next := make(map[string]int64, len(counts))
	for k, v := range counts {
		next[k] = v
	}

	u.mu.Lock()
	u.counts = next
	u.mu.Unlock()
}

// Increment bumps the counter for url.
func (u *UsageCounts) Increment(url string) {
	u.mu.Lock()
	u.counts[url]++
	u.mu.Unlock()
}

// Count returns the counter for url.
func (u *UsageCounts) Count(url string) int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.counts[url]
}

// ForLink is a usage function for MemoryIndex.Best.
func (u *UsageCounts) ForLink(l domain.Link) int64 {
	return u.Count(l.URL)
}
