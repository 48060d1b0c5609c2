package redis

import "strings"

const (
	// KeyUsageCounts is the hash of URL -> open count
	KeyUsageCounts = "golink:usage:counts"
	// KeyUsageLastOpened is the hash of URL -> unix time of the last open
	KeyUsageLastOpened = "golink:usage:last"
	// KeyPrefixCache is the prefix for cached /go resolutions
	KeyPrefixCache = "golink:cache:"
)

// CacheKey returns the Redis key for a cached resolution. Queries are
// matched case-insensitively, so the key is lowercased.
func CacheKey(query string) string {
	return KeyPrefixCache + strings.ToLower(strings.TrimSpace(query))
}
