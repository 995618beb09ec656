package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roadwatch/roadwatch-api/internal/pkg/config"
)

const pingTimeout = 5 * time.Second

// Connect opens the cache client described by the REDIS_* configuration
// and confirms the server answers a ping. The report-list cache is
// best-effort, so callers are free to treat a failure here as non-fatal
// and run without a cache.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
