// Package redis connects to the optional Redis server that backs usage
// counters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/golink/internal/logger"
)

// ConnectOptions defines the Redis connection and its retry behavior.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	Password       string        // Optional password
	DB             int           // Redis DB number
	DialTimeout    time.Duration // per-dial timeout
	ConnectTimeout time.Duration // total time allowed for connection attempts
	RetryInterval  time.Duration // first wait between attempts, doubled each retry
	MaxWait        time.Duration // cap on the wait between attempts
	PingTimeout    time.Duration // timeout for each ping attempt
}

// DefaultConnectOptions returns options for addr suited to a short-lived
// CLI process: a single quick attempt window.
func DefaultConnectOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    time.Second,
		ConnectTimeout: 2 * time.Second,
		RetryInterval:  200 * time.Millisecond,
		MaxWait:        time.Second,
		PingTimeout:    time.Second,
	}
}

func (o ConnectOptions) validate() error {
	switch {
	case o.Addr == "":
		return fmt.Errorf("redis address is empty")
	case o.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	case o.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	case o.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	case o.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	}
	return nil
}

// nextWait doubles wait up to limit.
func nextWait(wait, limit time.Duration) time.Duration {
	wait *= 2
	if wait > limit {
		return limit
	}
	return wait
}

// Connect creates a client and pings it with exponential backoff until it
// answers or ConnectTimeout elapses.
func Connect(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	log.Debug("connecting to redis",
		logger.String("addr", opts.Addr),
		logger.Duration("timeout", opts.ConnectTimeout))

	start := time.Now()
	wait := opts.RetryInterval

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			log.Debug("connected to redis",
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt),
				logger.Duration("elapsed", time.Since(start)))
			return client, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = client.Close()
			return nil, fmt.Errorf("redis unavailable at %s after %d attempts: %w", opts.Addr, attempt, err)
		case <-timer.C:
			log.Debug("redis connection failed, retrying",
				logger.String("addr", opts.Addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
			wait = nextWait(wait, opts.MaxWait)
		}
	}
}
