package live

import (
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dmitrymomot/contactform/pkg/cache"
)

type entry struct {
	session  *Session
	lastSeen atomic.Int64 // unix nanoseconds
}

// registry keeps sessions in an LRU with idle expiry on top. Sessions with
// an attached stream never expire; they can still be pushed out by capacity.
// Every session leaving the registry is closed.
type registry struct {
	ttl   time.Duration
	clock clock.Clock
	lru   *cache.LRUCache[string, *entry]
}

func newRegistry(capacity int, ttl time.Duration, clk clock.Clock) *registry {
	return &registry{
		ttl:   ttl,
		clock: clk,
		lru: cache.NewLRUCache(capacity, cache.WithEvictFunc[string, *entry](func(_ string, e *entry) {
			e.session.Close()
		})),
	}
}

func (r *registry) put(s *Session) {
	e := &entry{session: s}
	e.lastSeen.Store(r.clock.Now().UnixNano())
	r.lru.Put(s.id, e)
}

// get returns the session and marks it used. An expired session is evicted
// and reported as missing.
func (r *registry) get(id string) (*Session, bool) {
	e, ok := r.lru.Get(id)
	if !ok {
		return nil, false
	}
	if r.expired(e) {
		r.lru.Remove(id)
		return nil, false
	}
	e.lastSeen.Store(r.clock.Now().UnixNano())
	return e.session, true
}

func (r *registry) remove(id string) {
	r.lru.Remove(id)
}

// sweep evicts every expired session and returns how many it closed.
func (r *registry) sweep() int {
	return r.lru.RemoveIf(func(_ string, e *entry) bool {
		return r.expired(e)
	})
}

func (r *registry) len() int {
	return r.lru.Len()
}

func (r *registry) clear() {
	r.lru.Clear()
}

func (r *registry) expired(e *entry) bool {
	if r.ttl <= 0 || e.session.Watched() {
		return false
	}
	return r.clock.Since(time.Unix(0, e.lastSeen.Load())) > r.ttl
}
