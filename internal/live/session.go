package live

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/contactform/pkg/broadcast"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/submission"
)

// Session is one rendered form wired to its controller. Every document
// change is published on the session's hub; the page stream subscribes to
// it and turns changes into element patches.
type Session struct {
	id         string
	controller *form.Controller
	pipeline   *submission.Pipeline
	hub        *broadcast.MemoryBroadcaster[form.Change]
	log        *slog.Logger

	closeOnce sync.Once
}

func (s *Session) ID() string     { return s.id }
func (s *Session) FormID() string { return s.controller.ID() }

// Snapshot returns a copy of the document for rendering.
func (s *Session) Snapshot() *form.Form {
	return s.controller.Snapshot()
}

// Subscribe streams document changes until ctx ends or the session closes.
func (s *Session) Subscribe(ctx context.Context) broadcast.Subscriber[form.Change] {
	return s.hub.Subscribe(ctx)
}

// Watched reports whether a page stream is attached.
func (s *Session) Watched() bool {
	return s.hub.Subscribers() > 0
}

func (s *Session) Input(name, value string) error {
	return s.controller.Input(name, value)
}

func (s *Session) Blur(name string) (bool, error) {
	return s.controller.Blur(name)
}

func (s *Session) Focus(name string) error {
	return s.controller.Focus(name)
}

// Submit runs the submission pipeline. values, when not nil, are the field
// values the client posted with the submit; they are stored only once the
// submission is accepted. A submit while one is in flight returns
// submission.ErrInProgress and changes nothing.
func (s *Session) Submit(ctx context.Context, values map[string]string) (submission.Outcome, error) {
	ctx = WithSession(ctx, s.id)

	var prepare func()
	if values != nil {
		prepare = func() {
			if err := s.controller.SetValues(values); err != nil {
				s.log.DebugContext(ctx, "submitted values dropped", logger.Error(err))
			}
		}
	}

	out, err := s.pipeline.RunWith(ctx, s.controller, prepare)
	if err != nil {
		s.log.DebugContext(ctx, "submit ignored", logger.Error(err))
		return out, err
	}
	s.log.DebugContext(ctx, "submit finished", logger.State(string(out.State)))
	return out, nil
}

// Fallback submits values posted by a browser without scripting.
// Textarea line endings are normalised to "\n".
func (s *Session) Fallback(ctx context.Context, values map[string]string) (submission.Outcome, error) {
	normalised := make(map[string]string, len(values))
	for k, v := range values {
		normalised[k] = strings.ReplaceAll(v, "\r\n", "\n")
	}
	return s.Submit(ctx, normalised)
}

// Close stops timers and ends every attached stream. It is idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.pipeline.Close()
		s.controller.Close()
		_ = s.hub.Close()
	})
}

func (s *Session) publish(ch form.Change) {
	_ = s.hub.Broadcast(broadcast.Message[form.Change]{Data: ch})
}
