package submission

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/contactform/pkg/statemachine"
)

// State is a step of the submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateValid      State = "valid"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Event moves the lifecycle from one state to the next.
type Event string

const (
	EventSubmit    Event = "submit"
	EventRejected  Event = "rejected"
	EventAccepted  Event = "accepted"
	EventSend      Event = "send"
	EventSucceeded Event = "succeeded"
	EventFailed    Event = "failed"
	EventSettle    Event = "settle"
)

// TransitionFunc observes every completed transition.
type TransitionFunc func(from, to State, event Event)

// Lifecycle is the thread-safe state of one form's submissions.
type Lifecycle struct {
	machine *statemachine.Machine[State, Event]
}

func NewLifecycle(observe TransitionFunc) *Lifecycle {
	b := statemachine.NewBuilder[State, Event](StateIdle).
		From(StateIdle).When(EventSubmit).To(StateValidating).Add().
		From(StateValidating).When(EventRejected).To(StateInvalid).Add().
		From(StateValidating).When(EventAccepted).To(StateValid).Add().
		From(StateInvalid).When(EventSettle).To(StateIdle).Add().
		From(StateValid).When(EventSend).To(StateSubmitting).Add().
		From(StateSubmitting).When(EventSucceeded).To(StateSuccess).Add().
		From(StateSubmitting).When(EventFailed).To(StateFailed).Add().
		From(StateSuccess).When(EventSettle).To(StateIdle).Add().
		From(StateFailed).When(EventSettle).To(StateIdle).Add()
	if observe != nil {
		b.Observe(statemachine.Observer[State, Event](observe))
	}
	return &Lifecycle{machine: b.MustBuild()}
}

func (l *Lifecycle) Current() State {
	return l.machine.Current()
}

// CanFire reports whether event is legal in the current state.
func (l *Lifecycle) CanFire(event Event) bool {
	return l.machine.CanFire(context.Background(), event, nil)
}

// Fire applies event, or returns an error wrapping ErrNoTransition.
func (l *Lifecycle) Fire(event Event) error {
	if err := l.machine.Fire(context.Background(), event, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrNoTransition, err)
	}
	return nil
}
