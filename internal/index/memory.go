package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

// MemoryIndex holds the current configuration snapshot and its flattened
// entries. Reloads are sequence-numbered: a result is applied only when
// its sequence is newer than the last applied one, so a slow reload that
// finishes after a faster, later one is dropped.
type MemoryIndex struct {
	mu         sync.RWMutex
	seq        uint64
	cfg        *domain.Config
	entries    []Entry
	err        error
	lastReload time.Time
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Apply replaces the snapshot with cfg if seq is newer than the current one.
// It reports whether the snapshot changed.
func (idx *MemoryIndex) Apply(seq uint64, cfg *domain.Config) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if seq <= idx.seq {
		return false
	}

	idx.seq = seq
	idx.cfg = cfg
	idx.entries = Flatten(cfg)
	idx.err = nil
	idx.lastReload = time.Now()
	return true
}

// Fail records a failed reload with sequence seq. The previous snapshot is
// discarded so callers show the error instead of stale links.
func (idx *MemoryIndex) Fail(seq uint64, err error) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if seq <= idx.seq {
		return false
	}

	idx.seq = seq
	idx.cfg = nil
	idx.entries = nil
	idx.err = err
	idx.lastReload = time.Now()
	return true
}

// Snapshot returns the current configuration or the error of the last
// reload.
func (idx *MemoryIndex) Snapshot() (*domain.Config, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.cfg, idx.err
}

// Entries returns a copy of all entries
func (idx *MemoryIndex) Entries() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Search filters the current entries by query.
func (idx *MemoryIndex) Search(query string) []Entry {
	return Filter(idx.Entries(), query)
}

// Best returns the highest ranked entry for query, using usage counters to
// break ties between equally good lexical matches.
func (idx *MemoryIndex) Best(query string, usage func(domain.Link) int64) (Entry, bool) {
	entries := idx.Entries()

	candidates := make([]*domain.Candidate, len(entries))
	for i, e := range entries {
		candidates[i] = &domain.Candidate{Link: e.Link, GroupName: e.GroupName}
	}

	ranked := domain.RankCandidates(query, candidates, usage)
	if len(ranked) == 0 {
		return Entry{}, false
	}

	for _, e := range entries {
		if e.GroupName == ranked[0].GroupName && e.Link.URL == ranked[0].Link.URL {
			return e, true
		}
	}
	return Entry{}, false
}

// Count returns the number of indexed links
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.entries)
}

// Seq returns the sequence number of the applied snapshot
func (idx *MemoryIndex) Seq() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.seq
}

// GetLastReload returns the time of the last applied reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
