package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/golink/internal/utils"
)

type RateLimitConfig struct {
	Burst      int           // tokens per client, 0 disables limiting
	PerMinute  int           // refill rate per client
	IdleTTL    time.Duration // idle clients are forgotten after this long
	TrustProxy bool          // resolve the client from proxy headers
	Now        func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// limiter is a per-client token bucket. A single mutex is enough for a
// personal service.
type limiter struct {
	mu        sync.Mutex
	capacity  float64
	perSecond float64
	idleTTL   time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.PerMinute < 1 {
		cfg.PerMinute = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &limiter{
		capacity:  float64(cfg.Burst),
		perSecond: float64(cfg.PerMinute) / 60.0,
		idleTTL:   cfg.IdleTTL,
		buckets:   make(map[string]*bucket),
		lastSweep: cfg.Now(),
		now:       cfg.Now,
	}
}

// take consumes one token for key. When none is left it returns the wait
// until the next token, rounded up to whole seconds.
func (l *limiter) take(key string) (remaining int, retryAfter int, ok bool) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.last) >= l.idleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, found := l.buckets[key]
	if !found {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perSecond)
		b.last = now
	}

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / l.perSecond))
		return 0, max(wait, 1), false
	}
	b.tokens--
	return int(b.tokens), 0, true
}

// RateLimit answers 429 with Retry-After once a client exhausts its burst.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	l := newLimiter(cfg)
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, retry, ok := l.take(utils.ClientIP(r, cfg.TrustProxy))

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
