package handler

import (
	"errors"
	"net/http"
)

// HTTPError is an error that maps to an HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest         = HTTPError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrNotFound           = HTTPError{Code: http.StatusNotFound, Message: "not found"}
	ErrConflict           = HTTPError{Code: http.StatusConflict, Message: "conflict"}
	ErrUnprocessable      = HTTPError{Code: http.StatusUnprocessableEntity, Message: "unprocessable entity"}
	ErrTooManyRequests    = HTTPError{Code: http.StatusTooManyRequests, Message: "Too many submissions. Please wait a moment and try again."}
	ErrInternal           = HTTPError{Code: http.StatusInternalServerError, Message: "internal server error"}
	ErrServiceUnavailable = HTTPError{Code: http.StatusServiceUnavailable, Message: "service unavailable"}
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)
