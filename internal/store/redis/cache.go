package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how long a /go resolution is reused
const DefaultCacheTTL = 24 * time.Hour

// CacheResolution stores a query -> URL resolution in cache
func (s *Store) CacheResolution(ctx context.Context, query, url string, ttl time.Duration) error {
	if err := s.client.Set(ctx, CacheKey(query), url, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resolution: %w", err)
	}
	return nil
}

// GetCachedResolution retrieves a cached resolution. A miss returns "".
func (s *Store) GetCachedResolution(ctx context.Context, query string) (string, error) {
	url, err := s.client.Get(ctx, CacheKey(query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get cached resolution: %w", err)
	}
	return url, nil
}

// InvalidateResolutions drops every cached resolution. Called after a
// configuration reload since links may have moved or disappeared.
func (s *Store) InvalidateResolutions(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
