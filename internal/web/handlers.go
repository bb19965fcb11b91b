package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/internal/live"
	"github.com/dmitrymomot/contactform/internal/web/view"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/submission"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

type sessionRequest struct {
	Session string `path:"session" json:"-"`
}

type fieldEventRequest struct {
	Session string `path:"session" json:"-"`
	Field   string `path:"field" json:"-"`
	Event   string `path:"event" json:"-"`

	// Fields holds the value signals, keyed by form id then field name.
	Fields map[string]map[string]string `json:"fields"`
}

type submitRequest struct {
	Session string `path:"session" json:"-"`

	// Fields holds the value signals at the moment of the submit, keyed by
	// form id then field name. Absent when the client sent no signals.
	Fields map[string]map[string]string `json:"fields"`
}

type fallbackRequest struct {
	Session string            `path:"session"`
	Values  map[string]string `form:"*"`
}

// page opens a session for every form marked for validation and renders
// the others as they are.
func (s *Server) page(ctx handler.Context, _ struct{}) handler.Response {
	schema := s.manager.Schema()
	forms := make([]view.Live, 0, len(schema.Forms))
	for _, spec := range schema.Forms {
		if !spec.Validate {
			doc, err := s.manager.Static(spec.ID)
			if err != nil {
				return errorResponse(err)
			}
			forms = append(forms, view.Live{Doc: doc})
			continue
		}

		sess, err := s.manager.Open(spec.ID)
		if err != nil {
			return errorResponse(errors.Join(handler.ErrServiceUnavailable, err))
		}
		forms = append(forms, view.Live{Session: sess.ID(), Doc: sess.Snapshot()})
	}
	return handler.Page(http.StatusOK, view.Page(s.title, forms))
}

func (s *Server) session(id string) (*live.Session, error) {
	sess, err := s.manager.Get(id)
	if err != nil {
		return nil, errors.Join(handler.ErrNotFound, err)
	}
	return sess, nil
}

func (s *Server) fieldEvent(ctx handler.Context, req fieldEventRequest) handler.Response {
	sess, err := s.session(req.Session)
	if err != nil {
		return errorResponse(err)
	}

	switch req.Event {
	case "input":
		value, ok := req.Fields[sess.FormID()][req.Field]
		if !ok {
			return errorResponse(handler.NewHTTPError(http.StatusBadRequest, "missing field value"))
		}
		err = sess.Input(req.Field, value)
	case "blur":
		_, err = sess.Blur(req.Field)
	case "focus":
		err = sess.Focus(req.Field)
	default:
		return errorResponse(handler.ErrNotFound)
	}

	switch {
	case errors.Is(err, form.ErrUnknownField):
		s.log.WarnContext(ctx, "event for unknown field",
			logger.SessionID(sess.ID()),
			logger.Field(req.Field),
			logger.Event(req.Event),
		)
		return errorResponse(errors.Join(handler.ErrNotFound, err))
	case errors.Is(err, form.ErrClosed):
		return errorResponse(errors.Join(handler.ErrNotFound, err))
	case err != nil:
		return errorResponse(err)
	}
	return handler.Empty()
}

// submit runs the pipeline while the session stream carries the busy state.
// The response patches the settled form so the submitting client is in
// sync even if its stream lagged.
func (s *Server) submit(ctx handler.Context, req submitRequest) handler.Response {
	sess, err := s.session(req.Session)
	if err != nil {
		return errorResponse(err)
	}

	// The last input event may still be in flight, so the signals sent with
	// the submit are the values that count.
	if _, err := sess.Submit(ctx, req.Fields[sess.FormID()]); err != nil {
		if errors.Is(err, submission.ErrInProgress) {
			return handler.Empty()
		}
		return errorResponse(err)
	}

	l := view.Live{Session: sess.ID(), Doc: sess.Snapshot()}
	return handler.TemplMulti(handler.Patch(view.Form(l)))
}

// fallback serves browsers without scripting. An expired session is
// replaced by a fresh one for the form named in the post.
func (s *Server) fallback(ctx handler.Context, req fallbackRequest) handler.Response {
	sess, err := s.manager.Get(req.Session)
	if errors.Is(err, live.ErrSessionNotFound) {
		sess, err = s.manager.Open(req.Values[view.FormIDField])
		if err != nil {
			return errorResponse(errors.Join(handler.ErrNotFound, err))
		}
		s.log.InfoContext(ctx, "fallback reopened session", logger.SessionID(sess.ID()))
	}
	if err != nil {
		return errorResponse(err)
	}

	out, err := sess.Fallback(ctx, req.Values)
	status := http.StatusOK
	switch {
	case errors.Is(err, submission.ErrInProgress):
		status = http.StatusConflict
	case err != nil:
		return errorResponse(err)
	case validator.IsValidationError(out.Err):
		status = http.StatusUnprocessableEntity
		s.log.DebugContext(ctx, "fallback rejected",
			logger.SessionID(sess.ID()),
			slog.Any("fields", validator.ExtractValidationErrors(out.Err).Fields()),
		)
	case out.State == submission.StateFailed:
		status = http.StatusBadGateway
	}

	page := view.Page(s.title, []view.Live{{Session: sess.ID(), Doc: sess.Snapshot()}})
	return handler.Page(status, page)
}
