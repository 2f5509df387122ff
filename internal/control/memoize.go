package control

import "sync"

// Memoize returns a thread-safe caching wrapper of fn. K should be
// immutable; fn may run more than once for a key under contention, but only
// the first stored result is returned.
func Memoize[K comparable, V any](fn func(K) V) func(K) V {
	var cache sync.Map

	return func(k K) V {
		if v, ok := cache.Load(k); ok {
			r, _ := v.(V)
			return r
		}

		v, _ := cache.LoadOrStore(k, fn(k))
		r, _ := v.(V)

		return r
	}
}
