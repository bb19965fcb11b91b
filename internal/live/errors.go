package live

import "errors"

var (
	ErrSessionNotFound = errors.New("live: session not found")
	ErrNotLive         = errors.New("live: form is not marked for validation")
	ErrClosed          = errors.New("live: manager closed")
)
