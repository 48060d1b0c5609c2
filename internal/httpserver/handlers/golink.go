package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// Go redirects /go/{query} to the best matching link.
func Go(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := chi.URLParam(r, "query")
		if unescaped, err := url.PathUnescape(query); err == nil {
			query = unescaped
		}
		query = strings.TrimSpace(query)
		if query == "" {
			http.Error(w, "missing query", http.StatusBadRequest)
			return
		}

		cfg, err := d.Index.Snapshot()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if cfg == nil {
			writeError(w, http.StatusServiceUnavailable, errNotLoaded)
			return
		}

		if target, ok := cachedTarget(ctx, d, query); ok {
			d.Logger.Info("cache hit, redirecting",
				logger.String("query", query),
				logger.String("url", target))
			recordOpen(ctx, d, target)
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		var usage func(domain.Link) int64
		if d.Usage != nil {
			usage = d.Usage.ForLink
		}
		best, ok := d.Index.Best(query, usage)
		if !ok {
			d.Logger.Debug("no link matched", logger.String("query", query))
			http.Error(w, "no link matches "+strconv.Quote(query), http.StatusNotFound)
			return
		}

		d.Logger.Info("redirecting",
			logger.String("query", query),
			logger.String("title", best.Link.Title),
			logger.String("url", best.Link.URL))

		if d.Store != nil {
			if err := d.Store.CacheResolution(ctx, query, best.Link.URL, d.CacheTTL); err != nil {
				d.Logger.Debug("failed to cache resolution", logger.Error(err))
			}
		}
		recordOpen(ctx, d, best.Link.URL)

		http.Redirect(w, r, best.Link.URL, http.StatusFound)
	}
}

// cachedTarget returns a cached resolution if it still points at a link
// present in the current snapshot.
func cachedTarget(ctx context.Context, d deps.Deps, query string) (string, bool) {
	if d.Store == nil {
		return "", false
	}
	target, err := d.Store.GetCachedResolution(ctx, query)
	if err != nil {
		d.Logger.Debug("cache lookup failed", logger.Error(err))
		return "", false
	}
	if target == "" || !containsURL(d.Index.Entries(), target) {
		return "", false
	}
	return target, true
}

func containsURL(entries []index.Entry, target string) bool {
	for _, e := range entries {
		if e.Link.URL == target {
			return true
		}
	}
	return false
}

// recordOpen bumps the usage counter, best effort.
func recordOpen(ctx context.Context, d deps.Deps, target string) {
	if d.Usage != nil {
		d.Usage.Increment(target)
	}
	if d.Store == nil {
		return
	}
	if err := d.Store.IncrementUsage(ctx, target); err != nil {
		d.Logger.Warn("failed to record usage",
			logger.String("url", target),
			logger.Error(err))
	}
}
