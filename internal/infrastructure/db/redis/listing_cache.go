package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListingCache stores listing results as JSON under a generation-scoped key.
// Invalidate bumps the generation, so entries written earlier are never read
// again and simply age out.
//
// Key format: dashboard:listing:<generation>:<key>
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Get returns the generation it read from so the caller can store a fresh
// value under that same generation.
func (c *ListingCache) Get(ctx context.Context, key string, dest any) (int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}

	raw, err := c.client.Get(ctx, listingKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("listing cache get: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return gen, false, fmt.Errorf("listing cache decode %s: %w", key, err)
	}
	return gen, true, nil
}

func (c *ListingCache) Set(ctx context.Context, gen int64, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("listing cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, listingKey(gen, key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("listing cache set: %w", err)
	}
	return nil
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("listing cache invalidate: %w", err)
	}
	return nil
}

const generationKey = keyPrefix + "listing:generation"

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("listing cache generation: %w", err)
	}
	return gen, nil
}

func listingKey(gen int64, key string) string {
	return fmt.Sprintf("%slisting:%d:%s", keyPrefix, gen, key)
}
