package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CatalogCacheTTL is the time-to-live for cached catalog listings. The
	// catalog changes rarely; a short TTL keeps new restaurants visible
	// without invalidation plumbing.
	CatalogCacheTTL = time.Minute

	catalogCacheKeyPrefix = "catalog"
)

// CachedRestaurant is the denormalized catalog entry stored in Redis.
type CachedRestaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Cuisine   string    `json:"cuisine"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogCache stores bounded catalog listings keyed by their result limit.
// Key format: "catalog:list:{limit}"
type CatalogCache struct {
	client *RedisClient
}

// NewCatalogCache creates a CatalogCache backed by the given RedisClient.
func NewCatalogCache(r *RedisClient) *CatalogCache {
	return &CatalogCache{client: r}
}

// GetList retrieves a cached listing for the given limit.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *CatalogCache) GetList(ctx context.Context, limit int) ([]CachedRestaurant, error) {
	raw, err := c.client.Client().Get(ctx, c.key(limit)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get list: %w", err)
	}

	var restaurants []CachedRestaurant
	if err := json.Unmarshal(raw, &restaurants); err != nil {
		return nil, fmt.Errorf("cache decode list: %w", err)
	}
	return restaurants, nil
}

// SetList stores a listing for the given limit with the catalog TTL.
func (c *CatalogCache) SetList(ctx context.Context, limit int, restaurants []CachedRestaurant) error {
	raw, err := json.Marshal(restaurants)
	if err != nil {
		return fmt.Errorf("cache encode list: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(limit), raw, CatalogCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set list: %w", err)
	}
	return nil
}

// key builds the Redis key: "catalog:list:{limit}"
func (c *CatalogCache) key(limit int) string {
	return fmt.Sprintf("%s:list:%d", catalogCacheKeyPrefix, limit)
}
