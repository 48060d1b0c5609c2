// Package redis persists usage counters and /go resolutions in Redis.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for usage counters and the resolution cache
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
