package web

import (
	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
)

const unknownClient = "unknown"

// throttle refuses a request once its client has used up its bucket. A
// limiter failure lets the request through.
func throttle[R any](s *Server) handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			rctx := ctx.Request().Context()
			key := clientip.FromContext(rctx)
			if key == "" {
				key = unknownClient
			}

			res, err := s.limiter.Allow(rctx, key)
			if err != nil {
				s.log.ErrorContext(rctx, "submit limiter failed", logger.Error(err))
				return next(ctx, req)
			}
			ratelimiter.SetHeaders(ctx.ResponseWriter(), res)
			if !res.Allowed {
				s.log.WarnContext(rctx, "submission throttled", logger.Duration(res.RetryAfter))
				return errorResponse(handler.ErrTooManyRequests)
			}
			return next(ctx, req)
		}
	}
}
