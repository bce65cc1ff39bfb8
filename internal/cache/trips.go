package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Trip listing pages are cached under a generation counter. Invalidation
// bumps the counter instead of scanning for page keys, so stale pages simply
// age out through their TTL.
const (
	tripPageKeyPrefix = "trips:page:"
	tripGenerationKey = "trips:gen"

	// DefaultTripPageTTL is used when the caller does not configure a TTL.
	DefaultTripPageTTL = 60 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// tripPageKey builds the cache key for one listing page under a generation.
func tripPageKey(generation int64, page, pageSize int) string {
	return fmt.Sprintf("%s%d:%d:%d", tripPageKeyPrefix, generation, page, pageSize)
}

// tripGeneration reads the current generation counter. A missing counter
// means no invalidation has happened yet; generation zero is used.
func (c *Cache) tripGeneration(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, tripGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// GetTripPage retrieves a cached listing page.
// Returns ErrCacheMiss if the page is not cached under the current generation.
func (c *Cache) GetTripPage(ctx context.Context, page, pageSize int) ([]byte, error) {
	gen, err := c.tripGeneration(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, tripPageKey(gen, page, pageSize)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get trip page failed: %w", err)
	}

	return payload, nil
}

// SetTripPage stores a serialized listing page under the current generation.
func (c *Cache) SetTripPage(ctx context.Context, page, pageSize int, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTripPageTTL
	}

	gen, err := c.tripGeneration(ctx)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, tripPageKey(gen, page, pageSize), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set trip page failed: %w", err)
	}
	return nil
}

// InvalidateTripPages bumps the generation counter, orphaning every cached
// page at once. Orphaned keys expire through their TTL.
func (c *Cache) InvalidateTripPages(ctx context.Context) error {
	if err := c.client.Incr(ctx, tripGenerationKey).Err(); err != nil {
		return fmt.Errorf("redis incr generation failed: %w", err)
	}
	return nil
}
