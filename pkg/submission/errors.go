package submission

import "errors"

var (
	// ErrInProgress is returned by Pipeline.Run while an earlier submission
	// of the same form is still running.
	ErrInProgress   = errors.New("submission: already in progress")
	ErrNoTransition = errors.New("submission: no transition")
	ErrRejected     = errors.New("submission: rejected by transport")
	ErrNilTransport = errors.New("submission: nil transport")
)
