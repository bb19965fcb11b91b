package statemachine

import (
	"errors"
	"fmt"
)

// Builder declares transitions fluently:
//
//	m, err := statemachine.NewBuilder[State, Event](Idle).
//		From(Idle).When(Submit).To(Validating).Add().
//		From(Validating).When(Rejected).To(Invalid).Add().
//		Build()
//
// Mistakes are collected and reported by Build.
type Builder[S, E comparable] struct {
	machine *Machine[S, E]
	pending Transition[S, E]
	set     uint8
	added   int
	errs    []error
}

const (
	setFrom uint8 = 1 << iota
	setEvent
	setTo
)

func NewBuilder[S, E comparable](initial S) *Builder[S, E] {
	return &Builder[S, E]{machine: New[S, E](initial)}
}

// From starts a new transition, dropping one that was not added.
func (b *Builder[S, E]) From(state S) *Builder[S, E] {
	b.pending = Transition[S, E]{From: state}
	b.set = setFrom
	return b
}

func (b *Builder[S, E]) When(event E) *Builder[S, E] {
	b.pending.Event = event
	b.set |= setEvent
	return b
}

func (b *Builder[S, E]) To(state S) *Builder[S, E] {
	b.pending.To = state
	b.set |= setTo
	return b
}

func (b *Builder[S, E]) WithGuard(g Guard[S, E]) *Builder[S, E] {
	if g != nil {
		b.pending.Guards = append(b.pending.Guards, g)
	}
	return b
}

func (b *Builder[S, E]) WithAction(a Action[S, E]) *Builder[S, E] {
	if a != nil {
		b.pending.Actions = append(b.pending.Actions, a)
	}
	return b
}

// Add commits the pending transition.
func (b *Builder[S, E]) Add() *Builder[S, E] {
	b.added++
	if b.set != setFrom|setEvent|setTo {
		b.errs = append(b.errs, fmt.Errorf("%w: transition %d", ErrIncomplete, b.added))
	} else {
		b.machine.AddTransition(b.pending)
	}
	b.pending = Transition[S, E]{}
	b.set = 0
	return b
}

// Observe registers an observer on the machine being built.
func (b *Builder[S, E]) Observe(fn Observer[S, E]) *Builder[S, E] {
	b.machine.Observe(fn)
	return b
}

func (b *Builder[S, E]) Build() (*Machine[S, E], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.machine, nil
}

// MustBuild panics on a malformed table. Use it for tables fixed at compile
// time.
func (b *Builder[S, E]) MustBuild() *Machine[S, E] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
