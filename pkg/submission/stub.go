package submission

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	DefaultStubDelay   = 2 * time.Second
	DefaultStubMessage = "Message sent successfully!"
)

// StubTransport pretends to deliver a submission: it waits Delay and then
// reports success. It stands in until a real backend is configured.
type StubTransport struct {
	Delay   time.Duration
	Message string
	Clock   clock.Clock
}

func NewStubTransport() *StubTransport {
	return &StubTransport{
		Delay:   DefaultStubDelay,
		Message: DefaultStubMessage,
		Clock:   clock.New(),
	}
}

func (s *StubTransport) Name() string { return "stub" }

func (s *StubTransport) Submit(ctx context.Context, _ Values) (Result, error) {
	c := s.Clock
	if c == nil {
		c = clock.New()
	}

	t := c.Timer(s.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return Result{Success: true, Message: s.Message}, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
