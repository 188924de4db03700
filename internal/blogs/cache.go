package blogs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishedCacheKey = "compass:blogs:published"

// Cache stores the published-post list in Redis so the public listing does
// not hit Mongo on every page view.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetPublished returns the cached list, or ok=false on miss or error.
func (c *Cache) GetPublished(ctx context.Context) ([]Blog, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, publishedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var posts []Blog
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

// SetPublished stores the list. Errors are swallowed: a cold cache is not a
// failure.
func (c *Cache) SetPublished(ctx context.Context, posts []Blog) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	c.client.Set(ctx, publishedCacheKey, raw, c.ttl)
}

// Invalidate drops the cached list after any write.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, publishedCacheKey)
}
