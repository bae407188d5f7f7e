package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory token-count caching
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a count from the cache
func (c *MemoryCache) Get(key string) (int, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(int), true
	}
	return 0, false
}

// Set stores a count in the cache
func (c *MemoryCache) Set(key string, count int) {
	c.cache.SetDefault(key, count)
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
