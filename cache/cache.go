// Package cache implements the keyed async cache described in spec.md
// §4.5: a fingerprint -> lazy cell map where each distinct key's factory
// runs at most once for the lifetime of the cache, even under concurrent
// demand. It is grounded on original_source/async-lazy/src/cache.rs's
// Cache<K,V,E> (scc::HashMap lookup + AppendOnlyVec store), realized here
// with a plain RWMutex since Go has no equivalent of scc's lock-free map in
// the example pack.
package cache

import (
	"sync"

	"github.com/mverleg/tel/alazy"
)

// Cache maps keys of type K to lazily-initialized values of type V. The
// store never shrinks; a *alazy.Cell[V] returned for a given key remains
// valid (and is the same pointer) for the cache's entire lifetime.
type Cache[K comparable, V any] struct {
	mu     sync.RWMutex
	lookup map[K]int
	data   []*alazy.Cell[V]
}

// New returns an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{lookup: make(map[K]int)}
}

// Get returns the cached result for key, computing it via factory if this
// is the first demand for that key. The two-phase lookup below matches
// spec.md §4.5: a read-locked borrow checks for an existing index first
// (the hot path, no allocation beyond what the map read itself needs);
// only on a miss do we take the write lock to install a fresh cell.
func (c *Cache[K, V]) Get(key K, factory func() (V, error)) *alazy.Result[V] {
	cell := c.cellFor(key)
	return cell.GetOrInit(factory)
}

func (c *Cache[K, V]) cellFor(key K) *alazy.Cell[V] {
	c.mu.RLock()
	if ix, ok := c.lookup[key]; ok {
		cell := c.data[ix]
		c.mu.RUnlock()
		return cell
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check under the write lock: another goroutine may have installed
	// the entry between our RUnlock and this Lock (insert-or-occupy).
	if ix, ok := c.lookup[key]; ok {
		return c.data[ix]
	}
	cell := alazy.New[V]()
	ix := len(c.data)
	c.data = append(c.data, cell)
	c.lookup[key] = ix
	return cell
}

// Peek returns the cell installed for key, if any, without creating one.
// Used by callers that need to inspect a cell's state (e.g. IsInitializing
// for cycle detection, spec.md §4.8) before deciding whether to block on it.
func (c *Cache[K, V]) Peek(key K) (*alazy.Cell[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ix, ok := c.lookup[key]
	if !ok {
		return nil, false
	}
	return c.data[ix], true
}

// Len reports the number of distinct keys ever demanded from this cache.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
