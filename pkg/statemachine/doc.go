// Package statemachine provides a small generic finite state machine.
//
// States and events are any comparable types, usually string constants.
// Transitions may carry guards, evaluated in declaration order to pick
// between transitions that share a state and event, and actions that run
// before the state changes and can veto it by returning an error.
// Observers see every completed transition outside the machine's lock, so
// they may call back into the machine.
//
// Fire errors unwrap to ErrNoTransition or ErrRejected:
//
//	if err := m.Fire(ctx, Submit, nil); errors.Is(err, statemachine.ErrNoTransition) {
//		// already busy
//	}
package statemachine
