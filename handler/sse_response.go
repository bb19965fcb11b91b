package handler

import (
	"net/http"
)

// SSEHandler runs for the lifetime of one event stream.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "event stream requires a datastar client")
	}
	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE keeps the response open as a datastar event stream and hands it to
// fn. The stream ends when fn returns.
func SSE(fn SSEHandler) Response {
	return sseResponse{handler: fn}
}
