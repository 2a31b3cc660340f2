package accessor

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test typeCache functionality
func TestTypeCache(t *testing.T) {
	t.Run("newTypeCache", func(t *testing.T) {
		cache := newTypeCache[string, int]()
		assert.NotNil(t, cache)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("GetOrCreate", func(t *testing.T) {
		cache := newTypeCache[reflect.Type, int]()
		key := reflect.TypeFor[InputObject]()

		// First call should create
		assert.Equal(t, 42, cache.GetOrCreate(key, func() int { return 42 }))

		// Second call should return the memoized value
		value := cache.GetOrCreate(key, func() int {
			t.Error("Factory function should not be called second time")
			return 99
		})
		assert.Equal(t, 42, value, "Second call should return data from first call")
	})

	t.Run("Get", func(t *testing.T) {
		cache := newTypeCache[string, int]()

		// Should not exist initially
		value, exists := cache.Get("test")
		assert.Zero(t, value)
		assert.False(t, exists)

		cache.GetOrCreate("test", func() int { return 42 })

		value, exists = cache.Get("test")
		assert.True(t, exists)
		assert.Equal(t, 42, value)
	})

	t.Run("Delete", func(t *testing.T) {
		cache := newTypeCache[string, int]()
		cache.GetOrCreate("test", func() int { return 42 })

		cache.Delete("test")

		_, exists := cache.Get("test")
		assert.False(t, exists)

		// A deleted key is created again
		assert.Equal(t, 7, cache.GetOrCreate("test", func() int { return 7 }))
	})

	t.Run("Clear", func(t *testing.T) {
		cache := newTypeCache[string, int]()
		cache.GetOrCreate("test1", func() int { return 42 })
		cache.GetOrCreate("test2", func() int { return 99 })
		assert.Equal(t, 2, cache.Len())

		cache.Clear()

		_, exists1 := cache.Get("test1")
		_, exists2 := cache.Get("test2")
		assert.False(t, exists1)
		assert.False(t, exists2)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		cache := newTypeCache[string, int]()
		var calls atomic.Int32

		var wg sync.WaitGroup
		results := make([]int, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = cache.GetOrCreate("shared", func() int {
					calls.Add(1)
					return 42
				})
			}(i)
		}
		wg.Wait()

		// Factory runs once, every caller sees its result
		assert.Equal(t, int32(1), calls.Load())
		for _, result := range results {
			assert.Equal(t, 42, result)
		}
	})
}

func TestTypeInfoCache(t *testing.T) {
	t.Run("shared per type and options", func(t *testing.T) {
		typ := reflect.TypeFor[InputObject]()

		assert.Same(t, infoFor(typ, AccessorOpts{}), infoFor(typ, AccessorOpts{}))
		assert.NotSame(t, infoFor(typ, AccessorOpts{}), infoFor(typ, graphqlOpts))
	})

	t.Run("misses are not cached", func(t *testing.T) {
		info := infoFor(reflect.TypeFor[FooInput](), AccessorOpts{})

		_, ok := info.lookup("doesNotExist")
		assert.False(t, ok)
		_, cached := info.props.Get("doesNotExist")
		assert.False(t, cached)

		_, ok = info.lookup("bars")
		assert.True(t, ok)
		_, cached = info.props.Get("bars")
		assert.True(t, cached)
	})
}
