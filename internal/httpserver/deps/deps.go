package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// UsageStore is the optional Redis-backed part of /go resolution.
type UsageStore interface {
	Ping(ctx context.Context) error
	IncrementUsage(ctx context.Context, url string) error
	GetCachedResolution(ctx context.Context, query string) (string, error)
	CacheResolution(ctx context.Context, query, url string, ttl time.Duration) error
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time   // for testing, defaults to time.Now
	AllowedHosts    []string           // Host headers allowed to access the server
	AllowedCIDRS    []string           // IPs allowed to access the API and probes
	TrustProxy      bool               // true if running behind a trusted reverse proxy
	RateLimitBurst  int                // per client IP, 0 disables limiting
	RateLimitPerMin int                // sustained refill per client IP
	ConfigPath      string             // links file served by this instance
	Index           *index.MemoryIndex // current configuration snapshot
	Usage           *index.UsageCounts // in-memory open counters used for ranking
	Store           UsageStore         // nil when Redis is not configured
	CacheTTL        time.Duration      // lifetime of cached /go resolutions
	ReloadTrigger   chan struct{}      // Channel to trigger a manual configuration reload
}

// Now returns d.TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
