package accessor

import (
	"sync"
	"sync/atomic"
)

// typeCache provides thread-safe memoization of per-type metadata.
// Keys are usually reflect.Type values combined with the options the
// metadata depends on; reflect.Type is comparable and stable for the
// lifetime of the program.
type typeCache[K comparable, V any] struct {
	cache sync.Map // map[K]*cacheEntry[V]
}

// cacheEntry holds the memoized value for a single key
type cacheEntry[V any] struct {
	once  sync.Once   // Guards the factory call
	ready atomic.Bool // Set once value holds the factory result
	value V           // Memoized value
}

func (ce *cacheEntry[V]) load(factory func() V) V {
	ce.once.Do(func() {
		ce.value = factory()
		ce.ready.Store(true)
	})
	return ce.value
}

// newTypeCache creates a new thread-safe type cache
func newTypeCache[K comparable, V any]() *typeCache[K, V] {
	return &typeCache[K, V]{}
}

// GetOrCreate returns the value for key, creating it if it doesn't exist.
// The factory function is called only once per key, even under concurrent access.
func (tc *typeCache[K, V]) GetOrCreate(key K, factory func() V) V {
	// Fast path, avoids allocating an entry for hits
	if v, ok := tc.cache.Load(key); ok {
		return v.(*cacheEntry[V]).load(factory)
	}

	actual, _ := tc.cache.LoadOrStore(key, &cacheEntry[V]{})
	return actual.(*cacheEntry[V]).load(factory)
}

// Get retrieves the value for key if it has been created
func (tc *typeCache[K, V]) Get(key K) (V, bool) {
	if v, ok := tc.cache.Load(key); ok {
		entry := v.(*cacheEntry[V])
		if entry.ready.Load() {
			return entry.value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes the entry for key
func (tc *typeCache[K, V]) Delete(key K) {
	tc.cache.Delete(key)
}

// Clear removes all entries
func (tc *typeCache[K, V]) Clear() {
	tc.cache.Range(func(key, _ any) bool {
		tc.cache.Delete(key)
		return true
	})
}

// Len returns the number of entries currently held
func (tc *typeCache[K, V]) Len() int {
	n := 0
	tc.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
