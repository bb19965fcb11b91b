// Package cache provides a generic, thread-safe LRU cache.
//
// The cache is bounded by entry count. Entries leaving it, whether pushed
// out by capacity or removed explicitly, go through an optional evict
// callback that runs outside the cache lock, so it can release resources
// held by the value:
//
//	sessions := cache.NewLRUCache[string, *Session](1000,
//		cache.WithEvictFunc(func(_ string, s *Session) { s.Close() }),
//	)
//
// RemoveIf supports time-based expiry layered on top: keep a timestamp in
// the value and sweep periodically.
package cache
