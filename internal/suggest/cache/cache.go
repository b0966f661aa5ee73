// Package cache provides a bounded key-value store with insertion-order
// (FIFO) eviction. It backs the suggestion engine's result cache and the
// namespaced explanation caches.
package cache

import (
	"strings"
	"sync"
)

// DefaultMaxSize is the default capacity of a Cache.
const DefaultMaxSize = 100

// Cache is a bounded key-value store. When full, Set evicts the
// oldest-inserted key. A Get never refreshes a key's position, so
// eviction is strictly FIFO rather than LRU.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
	order   []string
	maxSize int
}

// Stats describes the current state of a Cache.
type Stats struct {
	Size    int
	MaxSize int

	// CategoryCounts groups keys by their namespace prefix
	// (the part before the first ':', or "general" when absent).
	CategoryCounts map[string]int
}

// New creates a Cache with the given capacity.
// If maxSize is not positive, DefaultMaxSize is used.
func New(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		entries: make(map[string]any),
		maxSize: maxSize,
	}
}

// Get returns the value stored under key, if present.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set stores value under key. When the cache is at capacity and key is
// new, the oldest-inserted key is evicted first.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		// Overwriting keeps the key's original insertion position.
		c.entries[key] = value
		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
	c.order = nil
}

// ClearPrefix removes all keys starting with prefix.
func (c *Cache) ClearPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, key := range c.order {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		} else {
			kept = append(kept, key)
		}
	}
	c.order = kept
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache's size and key categories.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := make(map[string]int)
	for _, key := range c.order {
		category := "general"
		if idx := strings.Index(key, ":"); idx > 0 {
			category = key[:idx]
		}
		counts[category]++
	}

	return Stats{
		Size:           len(c.entries),
		MaxSize:        c.maxSize,
		CategoryCounts: counts,
	}
}
