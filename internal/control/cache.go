package control

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache is a concurrent get-or-add map.
//
// Hits are lock-free sync.Map loads. Concurrent misses on one key are
// collapsed by a singleflight group so that compute runs once and every
// caller receives the same stored value. Failed computations are not
// stored; the next caller retries.
type Cache[K comparable, V any] struct {
	entries sync.Map
	group   singleflight.Group
	flight  func(K) string
	misses  atomic.Int64
}

// NewCache creates a Cache. flightKey maps a key to a string that is unique
// per key; it only names in-flight computations.
func NewCache[K comparable, V any](flightKey func(K) string) *Cache[K, V] {
	return &Cache[K, V]{flight: flightKey}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		var zero V
		return zero, false
	}

	r, _ := v.(V)

	return r, true
}

// GetOrAdd returns the cached value for key, computing and storing it on a miss.
func (c *Cache[K, V]) GetOrAdd(key K, compute func(K) (V, error)) (V, error) {
	if v, ok := c.entries.Load(key); ok {
		r, _ := v.(V)
		return r, nil
	}

	res, err, _ := c.group.Do(c.flight(key), func() (any, error) {
		if v, ok := c.entries.Load(key); ok {
			return v, nil
		}

		c.misses.Add(1)

		v, err := compute(key)
		if err != nil {
			return nil, err
		}

		actual, _ := c.entries.LoadOrStore(key, v)

		return actual, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r, _ := res.(V)

	return r, nil
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Misses returns how many computations have been started.
func (c *Cache[K, V]) Misses() int64 {
	return c.misses.Load()
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.entries.Clear()
}

func stringKey(s string) string { return s }

func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%p", t)
}

// Caches groups the tag and metadata caches a Resolver uses. Resolvers that
// share a Caches value share resolution results.
type Caches struct {
	// Tags maps "prefix:name" to the resolved control type.
	Tags *Cache[string, *ControlType]
	// Metadata maps a control type to its metadata.
	Metadata *Cache[reflect.Type, *Metadata]
}

// NewCaches creates empty caches.
func NewCaches() *Caches {
	return &Caches{
		Tags:     NewCache[string, *ControlType](stringKey),
		Metadata: NewCache[reflect.Type, *Metadata](typeKey),
	}
}
