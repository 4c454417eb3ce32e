package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

// Redis-backed cache for directions provider responses. Entries expire after
// a short TTL; the cache is session-scale, not a persistent route store.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

// key hashes the request triple so arbitrary place identifiers stay within
// Redis key limits.
func key(origin, destination string, mode domain.TravelMode) string {
	sum := sha256.Sum256([]byte(origin + "|" + destination + "|" + string(mode)))
	return fmt.Sprintf("routes:%s:%x", mode, sum[:16])
}

// Get returns the cached candidates for a request triple. The second return
// is false on a miss.
func (c *RedisRouteCache) Get(
	ctx context.Context,
	origin, destination string,
	mode domain.TravelMode,
) ([]domain.RouteEstimate, bool, error) {
	if c.client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}

	raw, err := c.client.Get(ctx, key(origin, destination, mode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache get: %w", err)
	}

	var routes []domain.RouteEstimate
	if err := json.Unmarshal(raw, &routes); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}

	return routes, true, nil
}

// Put stores the candidates for a request triple.
func (c *RedisRouteCache) Put(
	ctx context.Context,
	origin, destination string,
	mode domain.TravelMode,
	routes []domain.RouteEstimate,
) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}

	raw, err := json.Marshal(routes)
	if err != nil {
		return fmt.Errorf("route cache put: marshal: %w", err)
	}

	if err := c.client.Set(ctx, key(origin, destination, mode), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache put: %w", err)
	}

	return nil
}
