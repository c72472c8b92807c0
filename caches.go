package markup

import (
	"fmt"
	"reflect"
	"sync"
)

// cache is a concurrency-safe map of per-type values. Values are
// computed outside the cache and published with Put. Two goroutines
// racing to compute the same entry both succeed, and all callers
// observe whichever value was stored first.
type cache[V any] struct {
	m sync.Map
}

func (c *cache[V]) Get(t reflect.Type) (val V, found bool) {
	ent, ok := c.m.Load(t)
	if !ok {
		var zero V
		return zero, false
	}
	if val, ok := ent.(V); ok {
		return val, true
	}
	panic(fmt.Sprintf("mystery value %v (%T) in cache", ent, ent))
}

// Put stores val for t, unless a value is already present. It
// returns the value that ended up in the cache.
func (c *cache[V]) Put(t reflect.Type, val V) V {
	ent, _ := c.m.LoadOrStore(t, val)
	return ent.(V)
}

// Len returns the number of cached entries.
func (c *cache[V]) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear discards all cached entries.
func (c *cache[V]) Clear() {
	c.m.Clear()
}
