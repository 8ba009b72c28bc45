// Package cache provides a small in-memory key/value cache with per-entry
// expiry, used to hold short-lived state such as running quiz sessions.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// InMemory is a concurrency-safe TTL cache. Expired entries are invisible to
// Get and are swept lazily on Set.
type InMemory[V any] struct {
	storage map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time

	mx sync.RWMutex
}

// NewInMemory creates a cache whose entries live for ttl after their last Set.
func NewInMemory[V any](ttl time.Duration) *InMemory[V] {
	return &InMemory[V]{
		storage: make(map[string]entry[V], 16),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value stored under key if it has not expired.
func (c *InMemory[V]) Get(key string) (V, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	e, ok := c.storage[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key and restarts its TTL.
func (c *InMemory[V]) Set(key string, value V) {
	c.mx.Lock()
	defer c.mx.Unlock()

	now := c.now()
	c.sweep(now)
	c.storage[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *InMemory[V]) Delete(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	delete(c.storage, key)
}

// Len returns the number of live entries.
func (c *InMemory[V]) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()

	now := c.now()
	n := 0
	for _, e := range c.storage {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// sweep drops expired entries. Callers hold the write lock.
func (c *InMemory[V]) sweep(now time.Time) {
	for k, e := range c.storage {
		if !now.Before(e.expiresAt) {
			delete(c.storage, k)
		}
	}
}
