package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard decides at fire time whether a transition may be taken.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs before the state changes. Returning an error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Observer is told about every completed transition, after the machine's
// lock is released.
type Observer[S, E comparable] func(from, to S, event E)

// Transition is a state change triggered by an event.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // all must pass
	Actions []Action[S, E] // run in order before the change
}

// Machine is a thread-safe finite state machine.
// Transitions are indexed [from][event]; when several share a key the first
// one whose guards pass wins.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E][]Transition[S, E]
	observers   []Observer[S, E]
}

func New[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
}

func (m *Machine[S, E]) AddTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

// Observe registers fn for every later transition. Nil is ignored.
func (m *Machine[S, E]) Observe(fn Observer[S, E]) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire takes the first transition for event whose guards pass.
// It returns ErrNoTransition when none is defined from the current state,
// ErrRejected when guards blocked all of them, and the wrapped action error
// when an action failed. The state is unchanged in all three cases.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	from := m.current
	t, err := m.pickLocked(ctx, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, t.To, event, data); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("statemachine: action %v -> %v on %v: %w", from, t.To, event, err)
		}
	}
	m.current = t.To
	observers := m.observers
	m.mu.Unlock()

	for _, fn := range observers {
		fn(from, t.To, event)
	}
	return nil
}

// CanFire reports whether Fire would find a transition. Actions are not run.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.pickLocked(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state without notifying observers.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

// Must be called with lock held.
func (m *Machine[S, E]) pickLocked(ctx context.Context, event E, data any) (Transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return Transition[S, E]{}, &TransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event), err: ErrNoTransition}
	}
	for _, t := range candidates {
		if guardsPass(ctx, t.Guards, m.current, event, data) {
			return t, nil
		}
	}
	return Transition[S, E]{}, &TransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event), err: ErrRejected}
}

func guardsPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
