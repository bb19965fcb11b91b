package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// EvictFunc is called for every entry that leaves the cache through
// eviction, Remove, RemoveIf or Clear. It runs after the cache lock is
// released, so it may call back into the cache or block on cleanup.
type EvictFunc[K comparable, V any] func(key K, value V)

// LRUCache is a thread-safe cache bounded by entry count. Adding past the
// capacity evicts the least recently used entry.
type LRUCache[K comparable, V any] struct {
	capacity int
	onEvict  EvictFunc[K, V]

	mu    sync.Mutex
	items map[K]*list.Element
	order *list.List // front is most recently used
}

type Option[K comparable, V any] func(*LRUCache[K, V])

// WithEvictFunc sets the cleanup callback. Nil is ignored.
func WithEvictFunc[K comparable, V any](fn EvictFunc[K, V]) Option[K, V] {
	return func(c *LRUCache[K, V]) {
		if fn != nil {
			c.onEvict = fn
		}
	}
}

// NewLRUCache panics if capacity is not positive.
func NewLRUCache[K comparable, V any](capacity int, opts ...Option[K, V]) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry[K, V]).value, true
}

// Peek returns the value for key without touching its recency.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return elem.Value.(*lruEntry[K, V]).value, true
}

// Put adds or replaces the value for key and marks it recently used.
// A replaced value is returned, not passed to the evict callback.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	var evicted []*lruEntry[K, V]
	defer func() { c.notify(evicted) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*lruEntry[K, V])
		old := e.value
		e.value = value
		return old, true
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	for c.order.Len() > c.capacity {
		evicted = append(evicted, c.removeLocked(c.order.Back()))
	}

	var zero V
	return zero, false
}

// Remove deletes key and reports the value it held.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	var evicted []*lruEntry[K, V]
	defer func() { c.notify(evicted) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	e := c.removeLocked(elem)
	evicted = append(evicted, e)
	return e.value, true
}

// RemoveIf deletes every entry for which match returns true, walking from
// the least recently used, and returns how many it removed. match runs under
// the cache lock and must not call into the cache.
func (c *LRUCache[K, V]) RemoveIf(match func(key K, value V) bool) int {
	var evicted []*lruEntry[K, V]

	c.mu.Lock()
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		e := elem.Value.(*lruEntry[K, V])
		if match(e.key, e.value) {
			evicted = append(evicted, c.removeLocked(elem))
		}
		elem = prev
	}
	c.mu.Unlock()

	c.notify(evicted)
	return len(evicted)
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache, passing every entry to the evict callback.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	evicted := make([]*lruEntry[K, V], 0, len(c.items))
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		evicted = append(evicted, elem.Value.(*lruEntry[K, V]))
	}
	c.items = make(map[K]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.notify(evicted)
}

// Must be called with lock held.
func (c *LRUCache[K, V]) removeLocked(elem *list.Element) *lruEntry[K, V] {
	c.order.Remove(elem)
	e := elem.Value.(*lruEntry[K, V])
	delete(c.items, e.key)
	return e
}

func (c *LRUCache[K, V]) notify(evicted []*lruEntry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value)
	}
}
