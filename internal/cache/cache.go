// Package cache is the client's short-lived request-response cache, keyed by
// logical query identity (entity type plus filter parameters). Entries expire
// after a TTL and any mutating operation invalidates every key prefix its
// write could have affected. The backend stays the single source of truth.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a TTL map safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key builds a cache key from an entity name and filter parts. Parts are
// joined with "|" so that Invalidate can match on entity prefixes.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get returns the cached value for key, or ok=false on a miss or an expired
// entry.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// Invalidate removes every entry whose key starts with any of the given
// prefixes and returns the number of entries dropped.
func (c *Cache) Invalidate(prefixes ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				dropped++
				break
			}
		}
	}
	return dropped
}

// Sweep drops expired entries and returns how many were removed. Called
// periodically by the maintenance scheduler.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if c.now().Sub(e.storedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
