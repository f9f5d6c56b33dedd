// Package redis caches tracking snapshots in front of the read model.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parcelhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const trackingKeyPrefix = "tracking:"

// RedisStatusCache implements StatusCache with a per-snapshot TTL. A cache
// failure is returned to the caller, which falls back to storage.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatusCache creates a cache storing snapshots for the given TTL.
func NewRedisStatusCache(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached snapshot for a tracking number, reporting a miss
// when the key is absent.
func (c *RedisStatusCache) Get(ctx context.Context, trackingNo string) (ports.TrackingSnapshot, bool, error) {
	data, err := c.client.Get(ctx, trackingKeyPrefix+trackingNo).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.TrackingSnapshot{}, false, nil
	}
	if err != nil {
		return ports.TrackingSnapshot{}, false, err
	}

	var snapshot ports.TrackingSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return ports.TrackingSnapshot{}, false, err
	}
	return snapshot, true, nil
}

// Set stores a snapshot under its tracking number.
func (c *RedisStatusCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trackingKeyPrefix+snapshot.TrackingNo, data, c.ttl).Err()
}

// Invalidate drops the snapshot for a tracking number.
func (c *RedisStatusCache) Invalidate(ctx context.Context, trackingNo string) error {
	return c.client.Del(ctx, trackingKeyPrefix+trackingNo).Err()
}
