package live

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/contactform/pkg/logger"
)

type sessionKey struct{}

func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// SessionExtractor adds the live session id to log records.
func SessionExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := SessionFromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.SessionID(id), true
	}
}
