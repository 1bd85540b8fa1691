package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a read-through JSON cache for dashboard and report
// payloads. A zero-addr configuration disables it: every lookup
// misses and writes are no-ops.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, ttl time.Duration) *Cache {
	if addr == "" {
		return &Cache{}
	}

	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// NewWithClient wires an existing client (tests).
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads a cached payload into dest. Returns false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// InvalidatePrefix drops every key under a prefix. Called after
// writes that change what dashboards and reports show.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
