package rate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	cacheKey = "rate:latest"
	cacheTTL = time.Minute
)

// Cache is a read-through cache for the latest rate. A nil *Cache is valid
// and does nothing, so Redis stays optional.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context) (Rate, bool) {
	if c == nil {
		return Rate{}, false
	}
	data, err := c.client.Get(ctx, cacheKey).Result()
	if err != nil {
		return Rate{}, false
	}
	var r Rate
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return Rate{}, false
	}
	return r, true
}

func (c *Cache) Set(ctx context.Context, r Rate) {
	if c == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey, data, cacheTTL)
}

func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, cacheKey)
}
