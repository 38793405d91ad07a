package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cooktimer/backend/internal/domain"
)

// DefaultCleanupInterval is how often expired entries are purged
const DefaultCleanupInterval = 10 * time.Minute

// cacheItem represents a single encoded value in the cache with expiration
type cacheItem struct {
	Value      json.RawMessage
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Values are stored JSON-encoded, so Get always returns json.RawMessage.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	now   func() time.Time
}

// NewMemoryCache creates a new in-memory cache. Expired entries are purged
// every cleanupInterval until ctx is cancelled.
func NewMemoryCache(ctx context.Context, cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	cache := &MemoryCache{
		data: make(map[string]cacheItem),
		now:  time.Now,
	}

	go cache.cleanupExpired(ctx, cleanupInterval)

	return cache
}

// Get retrieves the encoded value stored under key
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || c.now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Value, nil
}

// Set encodes value as JSON and stores it with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Value:      encoded,
		Expiration: c.now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}
	return !c.now().After(item.Expiration), nil
}

// cleanupExpired removes expired entries periodically until ctx is done
func (c *MemoryCache) cleanupExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purge()
		}
	}
}

func (c *MemoryCache) purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
		}
	}
}
