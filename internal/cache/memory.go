// Package cache provides the in-memory cache used by the lite server.
package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an expiring LRU cache for composed tool results. It is
// safe for concurrent use.
type MemoryCache struct {
	lru *expirable.LRU[string, interface{}]
	ttl time.Duration
}

// NewMemoryCache creates a cache holding at most maxItems entries, each
// expiring after ttl.
func NewMemoryCache(maxItems int, ttl time.Duration) (*MemoryCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxItems)
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, interface{}](maxItems, nil, ttl),
		ttl: ttl,
	}, nil
}

// Get returns the cached value for key, or false when absent or
// expired.
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	return c.lru.Get(key)
}

// Set stores a value under key with the cache's default TTL.
func (c *MemoryCache) Set(key string, value interface{}) {
	c.lru.Add(key, value)
}

// Delete removes a key.
func (c *MemoryCache) Delete(key string) {
	c.lru.Remove(key)
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Purge drops all entries.
func (c *MemoryCache) Purge() {
	c.lru.Purge()
}

// TTL returns the configured entry lifetime.
func (c *MemoryCache) TTL() time.Duration {
	return c.ttl
}
