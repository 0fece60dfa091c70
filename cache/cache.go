// Package cache is a small generic cache with optional expiry, used to
// memoize resource bundle scans.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt int64 // UnixNano, 0 means no expiration
}

func (e *entry[V]) expired(now int64) bool {
	return e.expiresAt != 0 && now > e.expiresAt
}

// Cache is safe for concurrent use.
type Cache[K comparable, V any] struct {
	store      sync.Map
	defaultTTL time.Duration
	count      atomic.Int64
	now        func() time.Time
}

type Option[K comparable, V any] func(*Cache[K, V])

// WithDefaultTTL makes Set entries expire after ttl. Zero keeps them forever.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultTTL = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.now = now
	}
}

func NewCache[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores v under k, expiring after the default TTL if one is set.
func (c *Cache[K, V]) Set(k K, v V) {
	e := &entry[V]{value: v}
	if c.defaultTTL > 0 {
		e.expiresAt = c.now().Add(c.defaultTTL).UnixNano()
	}
	if _, loaded := c.store.Swap(k, e); !loaded {
		c.count.Add(1)
	}
}

// Get returns the value for k if present and not expired. Expired entries are
// dropped on access.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	var zero V
	loaded, ok := c.store.Load(k)
	if !ok {
		return zero, false
	}
	e := loaded.(*entry[V])
	if e.expired(c.now().UnixNano()) {
		if c.store.CompareAndDelete(k, e) {
			c.count.Add(-1)
		}
		return zero, false
	}
	return e.value, true
}

// GetOrLoad returns the cached value for k, or calls load and caches its
// result. Errors are returned and not cached. Concurrent misses may call
// load more than once; the last result wins.
func (c *Cache[K, V]) GetOrLoad(k K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(k, v)
	return v, nil
}

// DeleteExpired drops every expired entry.
func (c *Cache[K, V]) DeleteExpired() {
	now := c.now().UnixNano()
	c.store.Range(func(key, value interface{}) bool {
		if value.(*entry[V]).expired(now) && c.store.CompareAndDelete(key, value) {
			c.count.Add(-1)
		}
		return true
	})
}

// Len counts entries, expired ones not yet dropped included.
func (c *Cache[K, V]) Len() int64 {
	return c.count.Load()
}
