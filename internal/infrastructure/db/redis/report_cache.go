package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

const (
	listKey = "reports:list"
	listTTL = 30 * time.Second
)

// ReportCache caches the full report list in Redis. Entries expire after
// listTTL and are invalidated explicitly on every mutation, so the cache
// can only ever serve a briefly stale ordering, never a deleted record
// past the TTL.
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// GetList returns the cached list, or (nil, nil) on a miss.
func (c *ReportCache) GetList(ctx context.Context) ([]*domain.Report, error) {
	payload, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var reports []*domain.Report
	if err := json.Unmarshal(payload, &reports); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return reports, nil
}

// SetList stores the list with the cache TTL.
func (c *ReportCache) SetList(ctx context.Context, reports []*domain.Report) error {
	payload, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, listKey, payload, listTTL).Err()
}

// Invalidate drops the cached list after a mutation.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listKey).Err()
}
