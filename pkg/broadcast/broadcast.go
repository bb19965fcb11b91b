package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the channel messages arrive on. It is closed when the
	// subscription ends.
	Receive() <-chan Message[T]
	// TakeDropped returns how many messages were dropped because the buffer
	// was full since the last call, and resets the count.
	TakeDropped() uint64
	// Close is idempotent.
	Close() error
}

// Broadcaster sends messages to every subscriber without blocking on slow
// ones: a full buffer drops the message and counts it.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber that lives until ctx ends or Close.
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(msg Message[T]) error
	// Subscribers returns the number of active subscriptions.
	Subscribers() int
	Close() error
}

type subscriber[T any] struct {
	ch      chan Message[T]
	dropped atomic.Uint64
	closed  bool
	mu      sync.RWMutex
	onClose func(*subscriber[T])
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) TakeDropped() uint64 {
	return s.dropped.Swap(0)
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	close(s.ch)
	s.closed = true
	onClose := s.onClose
	s.mu.Unlock()

	if onClose != nil {
		onClose(s)
	}
	return nil
}

func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}
