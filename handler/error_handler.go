package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/requestid"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders plain requests. Without it http.Error is used.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorToast renders datastar requests. Without it they only get logged.
	ErrorToast func(ErrorToastParams) templ.Component

	ToastTarget string
	ToastMode   datastar.ElementPatchMode
}

type errorInfo struct {
	status  int
	message string
}

func (i errorInfo) clientError() bool {
	return i.status >= 400 && i.status < 500
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  http.StatusInternalServerError,
		message: "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.message = httpErr.Message
	}

	if verrs := validator.ExtractValidationErrors(err); !verrs.IsEmpty() {
		info.status = http.StatusUnprocessableEntity
		info.message = verrs.Error()
	}
	return info
}

// NewErrorHandler logs err with the request id and renders it as a page for
// plain requests or as a toast patch for datastar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchAppend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		level := slog.LevelError
		kind := "error"
		if info.clientError() {
			level = slog.LevelWarn
			kind = "warning"
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.message, Type: kind, RequestID: reqID})
			resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
			if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), info.message, info.status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{Error: info.message, StatusCode: info.status, RequestID: reqID})
		if rerr := Page(info.status, page).Render(ctx.ResponseWriter(), r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(rerr))
		}
	}
}
