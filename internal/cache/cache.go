// Package cache provides a small bounded cache with least-recently-used
// eviction, shared by the GPU packages for compiled and validated
// resources.
package cache

import "sync"

// Cache is a thread-safe map with a soft entry limit. When the limit is
// exceeded the least recently used quarter of the entries is evicted.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      int64
}

type entry[V any] struct {
	value V
	atime int64
}

// New returns a cache holding about softLimit entries. A limit of zero or
// less means unbounded.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]*entry[V]), softLimit: softLimit}
}

// Get returns the value stored under key and marks it as used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evict()
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.tick = 0
}

// evict drops the oldest entries down to three quarters of the limit.
func (c *Cache[K, V]) evict() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var oldest K
		first := true
		var oldestTick int64
		for k, e := range c.entries {
			if first || e.atime < oldestTick {
				oldest, oldestTick, first = k, e.atime, false
			}
		}
		delete(c.entries, oldest)
	}
}
