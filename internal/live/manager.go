package live

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/pkg/broadcast"
	"github.com/dmitrymomot/contactform/pkg/enhance"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/submission"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

const (
	DefaultCapacity   = 1000
	DefaultIdleTTL    = 30 * time.Minute
	DefaultBufferSize = 64
)

// Manager creates live sessions from a schema and keeps them in a bounded
// registry.
type Manager struct {
	schema       form.Schema
	transport    submission.Transport
	checker      *form.Checker
	enhancer     *enhance.Enhancer
	clock        clock.Clock
	log          *slog.Logger
	capacity     int
	ttl          time.Duration
	bufferSize   int
	pipelineOpts []submission.Option

	reg    *registry
	closed atomic.Bool
}

type Option func(*Manager)

func WithClock(c clock.Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithValidator replaces the validation thresholds and messages.
func WithValidator(cfg validator.Config) Option {
	return func(m *Manager) {
		m.checker = form.NewChecker(cfg)
	}
}

func WithEnhancer(e *enhance.Enhancer) Option {
	return func(m *Manager) {
		if e != nil {
			m.enhancer = e
		}
	}
}

// WithCapacity bounds the number of live sessions. The least recently used
// session is closed when a new one would exceed it.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithIdleTTL closes sessions without an attached stream that have not been
// used for d. Zero disables expiry.
func WithIdleTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.ttl = d
		}
	}
}

// WithBufferSize sets how many changes a stream may lag behind before
// changes are dropped for it.
func WithBufferSize(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.bufferSize = n
		}
	}
}

// WithPipelineOptions are applied to every session's submission pipeline
// after the manager's own.
func WithPipelineOptions(opts ...submission.Option) Option {
	return func(m *Manager) {
		m.pipelineOpts = append(m.pipelineOpts, opts...)
	}
}

// NewManager panics on a nil transport, like submission.NewPipeline.
func NewManager(schema form.Schema, transport submission.Transport, opts ...Option) *Manager {
	if transport == nil {
		panic(submission.ErrNilTransport)
	}
	m := &Manager{
		schema:     schema,
		transport:  transport,
		checker:    form.NewChecker(validator.DefaultConfig()),
		enhancer:   enhance.New(),
		clock:      clock.New(),
		log:        logger.Discard(),
		capacity:   DefaultCapacity,
		ttl:        DefaultIdleTTL,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reg = newRegistry(m.capacity, m.ttl, m.clock)
	return m
}

func (m *Manager) Schema() form.Schema {
	return m.schema
}

// Static builds the document of a form that is rendered without a session.
func (m *Manager) Static(formID string) (*form.Form, error) {
	spec, err := m.schema.Find(formID)
	if err != nil {
		return nil, err
	}
	doc := spec.Build()
	m.enhancer.Attach(doc)
	return doc, nil
}

// Open starts a session for the form formID. Only forms marked for
// validation can be opened.
func (m *Manager) Open(formID string) (*Session, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	spec, err := m.schema.Find(formID)
	if err != nil {
		return nil, err
	}
	if !spec.Validate {
		return nil, fmt.Errorf("%w: %q", ErrNotLive, formID)
	}

	doc := spec.Build()
	m.enhancer.Attach(doc)

	s := &Session{
		id:  uuid.NewString(),
		hub: broadcast.NewMemoryBroadcaster[form.Change](m.bufferSize),
		log: m.log.With(logger.FormID(formID)),
	}
	s.controller = form.NewController(doc, m.checker,
		form.WithClock(m.clock),
		form.WithChangeFunc(s.publish),
		form.WithInputHook(m.enhancer.Update),
	)
	popts := append([]submission.Option{
		submission.WithClock(m.clock),
		submission.WithLogger(m.log),
		submission.WithMessages(m.checker.Config().Messages),
		submission.WithResetHook(m.enhancer.Refresh),
	}, m.pipelineOpts...)
	s.pipeline = submission.NewPipeline(submission.ForForm(m.transport, formID), popts...)

	m.reg.put(s)
	s.log.Debug("live session opened", logger.SessionID(s.id))
	return s, nil
}

// Get returns the live session id, marking it used.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.reg.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return s, nil
}

// Discard closes and forgets the session id.
func (m *Manager) Discard(id string) {
	m.reg.remove(id)
}

func (m *Manager) Len() int {
	return m.reg.len()
}

// Sweep closes expired sessions and returns how many were closed.
func (m *Manager) Sweep() int {
	return m.reg.sweep()
}

// Run sweeps expired sessions every half TTL until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.ttl <= 0 {
		<-ctx.Done()
		return
	}
	ticker := m.clock.Ticker(m.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.DebugContext(ctx, "expired live sessions closed", slog.Int("count", n))
			}
		}
	}
}

// Close closes every session. Open fails afterwards.
func (m *Manager) Close() {
	if m.closed.Swap(true) {
		return
	}
	m.reg.clear()
}
