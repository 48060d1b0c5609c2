package index

import (
	"strings"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

// Entry is a link together with the group it belongs to.
type Entry struct {
	Link       domain.Link
	GroupName  string
	GroupTitle string
}

// Flatten lists every link in group order, then link order.
func Flatten(cfg *domain.Config) []Entry {
	if cfg == nil {
		return nil
	}

	entries := make([]Entry, 0, cfg.LinkCount())
	for _, g := range cfg.Groups {
		for _, l := range g.Links {
			entries = append(entries, Entry{Link: l, GroupName: g.Name, GroupTitle: g.Title})
		}
	}
	return entries
}

// Filter keeps entries whose title, URL or any keyword contains query,
// ignoring case. An empty query keeps everything. Order is preserved.
func Filter(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}

	q := strings.ToLower(query)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e.Link, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(l domain.Link, q string) bool {
	if strings.Contains(strings.ToLower(l.Title), q) || strings.Contains(strings.ToLower(l.URL), q) {
		return true
	}
	for _, kw := range l.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}
