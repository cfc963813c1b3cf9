// Package cache provides a small TTL cache for list query results.
// Entries expire after their ttl and are evicted in insertion order when
// capacity is exceeded. Each store owns a private instance; there is no
// cross-resource sharing
package cache

import (
	"net/url"
	"sync"
	"time"
)

const defaultCapacity = 32

type entry[V any] struct {
	value  V
	expiry time.Time
}

// Cache is a string-keyed TTL cache with capacity eviction
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	order    []string // insertion order, oldest first
	capacity int
	now      func() time.Time // seam
}

// New returns a Cache with the given capacity; capacity <= 0 uses the default
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Cache[V]{
		entries:  make(map[string]entry[V]),
		capacity: capacity,
		now:      time.Now,
	}
}

// Key builds a deterministic cache key from a namespace and a query
// descriptor. Equal descriptors yield equal keys regardless of map order;
// url encoding keeps distinct descriptors from colliding on separator bytes
func Key(namespace string, descriptor map[string]string) string {
	if len(descriptor) == 0 {
		return namespace
	}
	vals := url.Values{}
	for k, v := range descriptor {
		vals.Set(k, v)
	}
	return namespace + "?" + vals.Encode()
}

// Get returns the cached value when present and unexpired.
// An expired entry is evicted and reported as absent; stale values are
// never returned
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expiry) {
		c.remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set inserts value under key with expiry = now + ttl.
// When the cache is full the oldest-inserted entry is evicted first;
// re-setting an existing key refreshes its value without a new order slot
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry[V]{value: value, expiry: c.now().Add(ttl)}
		return
	}
	if len(c.order) >= c.capacity {
		c.remove(c.order[0])
	}
	c.entries[key] = entry[V]{value: value, expiry: c.now().Add(ttl)}
	c.order = append(c.order, key)
}

// InvalidateAll clears every entry. Called after any mutating operation on
// the owning resource
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.order = c.order[:0]
}

// Len reports the number of live entries, expired ones included until read
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from both the map and the order slice; callers hold mu
func (c *Cache[V]) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
