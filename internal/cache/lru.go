// Package cache provides caching utilities for the MCP server.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// store is the subset of the golang-lru caches used here.
type store[V any] interface {
	Get(key string) (V, bool)
	Add(key string, value V) bool
	Remove(key string) bool
	Len() int
	Purge()
}

// Cache is a thread-safe LRU cache keyed by LCSC part number.
type Cache[V any] struct {
	store store[V]
}

// New creates a cache holding at most maxItems values. A positive ttl
// also expires values that old.
func New[V any](maxItems int, ttl time.Duration) (*Cache[V], error) {
	if ttl > 0 {
		if maxItems <= 0 {
			maxItems = 1
		}
		return &Cache[V]{store: expirable.NewLRU[string, V](maxItems, nil, ttl)}, nil
	}

	c, err := lru.New[string, V](maxItems)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{store: c}, nil
}

// Get retrieves a value by key.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.store.Get(key)
}

// Put adds or updates a value.
func (c *Cache[V]) Put(key string, value V) {
	c.store.Add(key, value)
}

// Remove drops a value and reports whether it was present.
func (c *Cache[V]) Remove(key string) bool {
	return c.store.Remove(key)
}

// Len returns the current number of items in the cache.
func (c *Cache[V]) Len() int {
	return c.store.Len()
}

// Purge empties the cache.
func (c *Cache[V]) Purge() {
	c.store.Purge()
}
