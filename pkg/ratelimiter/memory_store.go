package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultStaleAfter is how long an untouched bucket is kept.
const DefaultStaleAfter = time.Hour

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory. Buckets idle for longer than
// the stale period are dropped by a background sweep.
type MemoryStore struct {
	clock      clock.Clock
	staleAfter time.Duration
	interval   time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	closed  bool

	stop chan struct{}
	once sync.Once
}

type MemoryStoreOption func(*MemoryStore)

func WithClock(c clock.Clock) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if c != nil {
			ms.clock = c
		}
	}
}

// WithCleanupInterval sets how often stale buckets are swept. Zero disables
// the background sweep.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.interval = d
	}
}

func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		clock:      clock.New(),
		staleAfter: DefaultStaleAfter,
		interval:   5 * time.Minute,
		buckets:    make(map[string]*bucket),
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}
	if ms.interval > 0 {
		go ms.cleanup()
	}
	return ms
}

func (ms *MemoryStore) Take(_ context.Context, key string, n int, cfg Config) (bool, int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return false, 0, time.Time{}, ErrClosed
	}

	now := ms.clock.Now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}
	b.lastAccess = now

	// cap the interval count so huge gaps cannot overflow
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals)
	if intervals > 0 {
		b.tokens = min(b.tokens+int(intervals)*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if b.tokens == cfg.Capacity {
			b.lastRefill = now
		}
	}

	resetAt := b.lastRefill.Add(cfg.RefillInterval)
	if b.tokens < n {
		return false, b.tokens, resetAt, nil
	}
	b.tokens -= n
	return true, b.tokens, resetAt, nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.buckets, key)
	return nil
}

// Len returns the number of tracked buckets.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}

// Sweep drops buckets untouched for longer than the stale period and
// returns how many were removed.
func (ms *MemoryStore) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.clock.Now()
	n := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
			n++
		}
	}
	return n
}

// Close stops the background sweep. Safe to call more than once.
func (ms *MemoryStore) Close() {
	ms.once.Do(func() {
		ms.mu.Lock()
		ms.closed = true
		ms.buckets = make(map[string]*bucket)
		ms.mu.Unlock()
		close(ms.stop)
	})
}

func (ms *MemoryStore) cleanup() {
	ticker := ms.clock.Ticker(ms.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.Sweep()
		case <-ms.stop:
			return
		}
	}
}
