package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecipientCache is the interface for recipient caching implementations.
type RecipientCache interface {
	// Get retrieves a recipient from cache by key.
	Get(ctx context.Context, key string) (*Recipient, bool)

	// Set stores a recipient in cache.
	Set(ctx context.Context, key string, r *Recipient) error

	// Delete removes a recipient from cache.
	Delete(ctx context.Context, key string) error
}

// NoOpRecipientCache disables caching, useful for testing or when caching
// is unwanted.
type NoOpRecipientCache struct{}

func (n *NoOpRecipientCache) Get(ctx context.Context, key string) (*Recipient, bool) {
	return nil, false
}

func (n *NoOpRecipientCache) Set(ctx context.Context, key string, r *Recipient) error {
	return nil
}

func (n *NoOpRecipientCache) Delete(ctx context.Context, key string) error {
	return nil
}

// RedisRecipientCache caches recipient records in Redis as JSON with a TTL.
// Cache failures are treated as misses; the directory remains the source of
// truth.
type RedisRecipientCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRecipientCache creates a Redis-backed recipient cache. A
// non-positive ttl defaults to five minutes.
func NewRedisRecipientCache(client redis.UniversalClient, ttl time.Duration) *RedisRecipientCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRecipientCache{client: client, ttl: ttl}
}

func (c *RedisRecipientCache) Get(ctx context.Context, key string) (*Recipient, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var r Recipient
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	return &r, true
}

func (c *RedisRecipientCache) Set(ctx context.Context, key string, r *Recipient) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal recipient: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisRecipientCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// CachedDirectory decorates a Directory with a read-through recipient
// cache. Not-found results are not cached.
type CachedDirectory struct {
	inner Directory
	cache RecipientCache
}

// NewCachedDirectory wraps the directory with the given cache. A nil cache
// falls back to NoOpRecipientCache.
func NewCachedDirectory(inner Directory, cache RecipientCache) *CachedDirectory {
	if cache == nil {
		cache = &NoOpRecipientCache{}
	}
	return &CachedDirectory{inner: inner, cache: cache}
}

func (d *CachedDirectory) FindTenant(ctx context.Context, id string) (*Recipient, error) {
	return d.find(ctx, "notification:recipient:tenant:"+id, id, d.inner.FindTenant)
}

func (d *CachedDirectory) FindUser(ctx context.Context, id string) (*Recipient, error) {
	return d.find(ctx, "notification:recipient:user:"+id, id, d.inner.FindUser)
}

// InvalidateTenant drops the cached tenant record, e.g. after a preference
// update.
func (d *CachedDirectory) InvalidateTenant(ctx context.Context, id string) error {
	return d.cache.Delete(ctx, "notification:recipient:tenant:"+id)
}

// InvalidateUser drops the cached user record.
func (d *CachedDirectory) InvalidateUser(ctx context.Context, id string) error {
	return d.cache.Delete(ctx, "notification:recipient:user:"+id)
}

func (d *CachedDirectory) find(ctx context.Context, key, id string, lookup func(context.Context, string) (*Recipient, error)) (*Recipient, error) {
	if r, ok := d.cache.Get(ctx, key); ok {
		return r, nil
	}
	r, err := lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = d.cache.Set(ctx, key, r)
	return r, nil
}
