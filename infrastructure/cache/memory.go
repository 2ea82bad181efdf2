// Package cache provides the Cache port implementations: an in-process map
// for Lambda and tests, Redis for the long-running server.
package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local cache. Good enough for a Lambda container where
// the process lives minutes; invalidation does not propagate across
// containers, the short TTL bounds that staleness.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an in-process cache
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]memoryItem),
	}
}

// Get retrieves a value, treating expired entries as misses.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores a value with a TTL. Expired entries are dropped lazily on the
// next write of the same key or on Get.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete removes a value.
func (c *Memory) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}
