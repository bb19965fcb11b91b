package web

import (
	"log/slog"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/internal/web/view"
	"github.com/dmitrymomot/contactform/pkg/broadcast"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

// stream pushes document changes of one session as element patches. It
// starts with the whole form, since changes may have happened between the
// page render and the stream connecting.
func (s *Server) stream(ctx handler.Context, req sessionRequest) handler.Response {
	sess, err := s.session(req.Session)
	if err != nil {
		return errorResponse(err)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		sub := sess.Subscribe(stream)
		defer sub.Close()

		s.log.DebugContext(stream, "stream attached")
		defer s.log.DebugContext(stream, "stream detached")

		if err := sendForm(stream, view.Live{Session: sess.ID(), Doc: sess.Snapshot()}); err != nil {
			return err
		}

		for msg := range sub.Receive() {
			batch := collect(msg.Data, sub)
			l := view.Live{Session: sess.ID(), Doc: sess.Snapshot()}

			if dropped := sub.TakeDropped(); dropped > 0 {
				s.log.WarnContext(stream, "stream lagged, resending form", slog.Uint64("dropped", dropped))
				batch = changeSet{form: true}
			}
			if err := send(stream, l, batch); err != nil {
				s.log.DebugContext(stream, "stream write failed", logger.Error(err))
				return nil
			}
		}
		return nil
	})
}

// changeSet is a batch of changes reduced to the parts to re-render.
type changeSet struct {
	form    bool
	message bool
	submit  bool
	fields  []string
}

func (c *changeSet) add(ch form.Change) {
	switch ch.Kind {
	case form.ChangeForm:
		c.form = true
	case form.ChangeMessage:
		c.message = true
	case form.ChangeSubmit:
		c.submit = true
	case form.ChangeField:
		for _, f := range c.fields {
			if f == ch.Field {
				return
			}
		}
		c.fields = append(c.fields, ch.Field)
	}
}

// collect merges first with every change already queued.
func collect(first form.Change, sub broadcast.Subscriber[form.Change]) changeSet {
	var set changeSet
	set.add(first)
	for {
		select {
		case msg, ok := <-sub.Receive():
			if !ok {
				return set
			}
			set.add(msg.Data)
		default:
			return set
		}
	}
}

func send(stream handler.StreamContext, l view.Live, set changeSet) error {
	if set.form {
		return sendForm(stream, l)
	}

	patches := make([]handler.TemplPatch, 0, len(set.fields)+2)
	for _, name := range set.fields {
		patches = append(patches, handler.Patch(view.FieldGroup(l, name)))
	}
	if set.message {
		patches = append(patches, handler.Patch(view.MessageSlot(l.Doc)))
	}
	if set.submit {
		patches = append(patches, handler.Patch(view.SubmitButton(l.Doc)))
	}
	return stream.SendMultiple(patches...)
}

// sendForm patches the whole form and resyncs the value signals, which
// element patches do not touch.
func sendForm(stream handler.StreamContext, l view.Live) error {
	if err := stream.SendComponent(view.Form(l)); err != nil {
		return err
	}
	return stream.SendSignals(view.Signals(l.Doc))
}
