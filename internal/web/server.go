package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/internal/live"
	"github.com/dmitrymomot/contactform/internal/web/view"
	"github.com/dmitrymomot/contactform/pkg/binder"
	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/requestid"
)

const DefaultTitle = "Contact"

// Server exposes live forms over HTTP.
type Server struct {
	manager *live.Manager
	log     *slog.Logger
	title   string
	checks  []httpserver.Check
	ips     *clientip.Resolver
	limiter *ratelimiter.Bucket
	errs    handler.ErrorHandler[handler.Context]
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithReadinessChecks makes /healthz report readiness instead of liveness.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *Server) {
		s.checks = append(s.checks, checks...)
	}
}

// WithClientIP sets how client addresses are resolved. The default trusts
// no headers and uses the connection address.
func WithClientIP(r *clientip.Resolver) Option {
	return func(s *Server) {
		if r != nil {
			s.ips = r
		}
	}
}

// WithSubmitLimiter throttles submit and fallback posts per client address.
func WithSubmitLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Server) {
		s.limiter = b
	}
}

func New(m *live.Manager, opts ...Option) *Server {
	s := &Server{
		manager: m,
		log:     logger.Discard(),
		title:   DefaultTitle,
		ips:     clientip.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errs = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:   view.ErrorPage,
		ErrorToast:  view.Toast,
		ToastTarget: "#" + view.ToastContainer,
	})
	return s
}

// Routes builds the router:
//
//	GET  /
//	GET  /healthz
//	GET  /forms/{session}/stream
//	POST /forms/{session}/fields/{field}/{event}
//	POST /forms/{session}/submit
//	POST /forms/{session}/fallback
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(s.ips.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/", wrap(s, s.page))
	r.Get("/healthz", httpserver.HealthCheckHandler(s.log, s.checks...))

	r.Route("/forms/{session}", func(r chi.Router) {
		r.Use(sessionContext)
		r.Get("/stream", wrap(s, s.stream, binder.Path()))
		r.Post("/fields/{field}/{event}", wrap(s, s.fieldEvent, binder.Path(), binder.Signals()))
		r.Post("/submit", wrapLimited(s, s.submit, binder.Path(), binder.Signals()))
		r.Post("/fallback", wrapLimited(s, s.fallback, binder.Path(), binder.Form()))
	})

	r.NotFound(wrap(s, func(handler.Context, struct{}) handler.Response {
		return errorResponse(handler.ErrNotFound)
	}))
	return r
}

func wrap[R any](s *Server, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errs),
	)
}

func wrapLimited[R any](s *Server, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	if s.limiter == nil {
		return wrap(s, h, binders...)
	}
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errs),
		handler.WithDecorators(throttle[R](s)),
	)
}

// sessionContext puts the session id in the request context so every log
// line written while serving it carries the id.
func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "session")
		next.ServeHTTP(w, r.WithContext(live.WithSession(r.Context(), id)))
	})
}

type errResponse struct{ err error }

func (e errResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// errorResponse hands err to the error handler.
func errorResponse(err error) handler.Response {
	return errResponse{err: err}
}
