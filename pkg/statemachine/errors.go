package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransition = errors.New("statemachine: no transition available")
	ErrRejected     = errors.New("statemachine: transition rejected by guards")
	ErrIncomplete   = errors.New("statemachine: transition needs from, event and to")
)

// TransitionError names the state and event Fire was called with.
// It unwraps to ErrNoTransition or ErrRejected.
type TransitionError struct {
	State string
	Event string
	err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v from %q on %q", e.err, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error {
	return e.err
}
