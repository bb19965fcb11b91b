package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dmitrymomot/contactform/pkg/async"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// Defaults for the loading state and the success banner.
const (
	DefaultBusyLabel    = "Sending..."
	DefaultDismissAfter = 5 * time.Second
	DefaultFadeDuration = 300 * time.Millisecond
)

// Target is the form a pipeline submits. *form.Controller implements it.
type Target interface {
	form.Editor
	ValidateForm() bool
}

// Outcome summarises one Run.
type Outcome struct {
	State   State
	Message string
	// Err is the transport failure for StateFailed and the
	// validator.ValidationErrors shown on the form for StateInvalid.
	Err error
}

// Pipeline runs submissions of a single form: validate, show the loading
// state, call the transport, report the outcome and restore the submit
// control.
type Pipeline struct {
	transport    Transport
	messages     validator.Messages
	clock        clock.Clock
	logger       *slog.Logger
	busyLabel    string
	dismissAfter time.Duration
	fadeDuration time.Duration
	onReset      func(*form.Form) bool
	observe      TransitionFunc

	lifecycle *Lifecycle

	mu     sync.Mutex
	timers map[*clock.Timer]struct{}
	closed bool
}

type Option func(*Pipeline)

func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithMessages(m validator.Messages) Option {
	return func(p *Pipeline) {
		p.messages = m
	}
}

// WithBusyLabel sets the submit label shown while the transport runs.
func WithBusyLabel(label string) Option {
	return func(p *Pipeline) {
		if label != "" {
			p.busyLabel = label
		}
	}
}

// WithDismiss sets how long a success banner stays and how long it fades.
func WithDismiss(after, fade time.Duration) Option {
	return func(p *Pipeline) {
		if after >= 0 {
			p.dismissAfter = after
		}
		if fade >= 0 {
			p.fadeDuration = fade
		}
	}
}

// WithResetHook runs fn after a successful submission has reset the form,
// under the same edit. Enhancers use it to refresh counters.
func WithResetHook(fn func(*form.Form) bool) Option {
	return func(p *Pipeline) {
		p.onReset = fn
	}
}

// WithTransitionFunc observes lifecycle transitions.
func WithTransitionFunc(fn TransitionFunc) Option {
	return func(p *Pipeline) {
		p.observe = fn
	}
}

// NewPipeline panics if transport is nil.
func NewPipeline(transport Transport, opts ...Option) *Pipeline {
	if transport == nil {
		panic(ErrNilTransport)
	}

	p := &Pipeline{
		transport:    transport,
		messages:     validator.DefaultMessages(),
		clock:        clock.New(),
		logger:       logger.Discard(),
		busyLabel:    DefaultBusyLabel,
		dismissAfter: DefaultDismissAfter,
		fadeDuration: DefaultFadeDuration,
		timers:       make(map[*clock.Timer]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lifecycle = NewLifecycle(p.observe)
	return p
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.lifecycle.Current()
}

// Run submits target once. It returns ErrInProgress, without touching the
// form, if a submission is already running.
//
// The transport runs on a context detached from ctx, so a caller that goes
// away does not abort a delivery already under way. There is no timeout;
// transports that need one bring their own.
func (p *Pipeline) Run(ctx context.Context, t Target) (Outcome, error) {
	return p.RunWith(ctx, t, nil)
}

// RunWith is Run with a prepare step. prepare runs once the submission has
// been accepted and before validation, typically to store the values the
// client posted with the submit. A rejected call never runs it.
func (p *Pipeline) RunWith(ctx context.Context, t Target, prepare func()) (Outcome, error) {
	if err := p.lifecycle.Fire(EventSubmit); err != nil {
		return Outcome{State: p.lifecycle.Current()}, ErrInProgress
	}
	defer p.settle()

	if prepare != nil {
		prepare()
	}

	if !t.ValidateForm() {
		p.fire(EventRejected)
		var verrs error
		t.Edit(func(f *form.Form) {
			f.ShowMessage(form.MessageError, p.messages.Invalid)
			if errs := form.Errors(f); !errs.IsEmpty() {
				verrs = errs
			}
		}, form.Change{Kind: form.ChangeMessage})
		return Outcome{State: StateInvalid, Message: p.messages.Invalid, Err: verrs}, nil
	}
	p.fire(EventAccepted)

	var (
		values Values
		label  string
		formID string
	)
	t.Edit(func(f *form.Form) {
		formID = f.ID
		values = Values(f.Values())
		label = f.Submit.Label
		f.Submit.Label = p.busyLabel
		f.Submit.Disabled = true
	}, form.Change{Kind: form.ChangeSubmit})
	defer t.Edit(func(f *form.Form) {
		f.Submit.Label = label
		f.Submit.Disabled = false
	}, form.Change{Kind: form.ChangeSubmit})
	p.fire(EventSend)

	name := transportName(p.transport)
	start := p.clock.Now()
	res, err := async.Async(context.WithoutCancel(ctx), values, p.transport.Submit).Await()
	if err == nil && !res.Success {
		err = ErrRejected
		if res.Message != "" {
			err = errors.Join(ErrRejected, errors.New(res.Message))
		}
	}

	if err != nil {
		p.fire(EventFailed)
		p.logger.ErrorContext(ctx, "form submission failed",
			logger.FormID(formID),
			logger.Transport(name),
			logger.Error(err),
		)
		t.Edit(func(f *form.Form) {
			f.ShowMessage(form.MessageError, p.messages.Failure)
		}, form.Change{Kind: form.ChangeMessage})
		return Outcome{State: StateFailed, Message: p.messages.Failure, Err: err}, nil
	}

	p.fire(EventSucceeded)
	p.logger.InfoContext(ctx, "form submitted",
		logger.FormID(formID),
		logger.Transport(name),
		logger.Duration(p.clock.Since(start)),
	)

	var seq uint64
	t.Edit(func(f *form.Form) {
		seq = f.ShowMessage(form.MessageSuccess, p.messages.Success).Seq
		f.Reset()
		form.ClearAllErrors(f)
		if p.onReset != nil {
			p.onReset(f)
		}
	}, form.Change{Kind: form.ChangeForm})
	p.scheduleDismiss(t, seq)

	return Outcome{State: StateSuccess, Message: p.messages.Success}, nil
}

// Close stops pending banner dismissals.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for t := range p.timers {
		t.Stop()
	}
	clear(p.timers)
}

// scheduleDismiss fades the success banner after dismissAfter and removes it
// fadeDuration later. Both steps are skipped if the banner was replaced.
func (p *Pipeline) scheduleDismiss(t Target, seq uint64) {
	p.after(p.dismissAfter, func() {
		t.Edit(func(f *form.Form) {
			f.FadeMessage(seq)
		}, form.Change{Kind: form.ChangeMessage})
	})
	p.after(p.dismissAfter+p.fadeDuration, func() {
		t.Edit(func(f *form.Form) {
			f.ClearMessage(seq)
		}, form.Change{Kind: form.ChangeMessage})
	})
}

func (p *Pipeline) after(d time.Duration, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	var timer *clock.Timer
	timer = p.clock.AfterFunc(d, func() {
		p.mu.Lock()
		_, live := p.timers[timer]
		delete(p.timers, timer)
		p.mu.Unlock()
		if live {
			fn()
		}
	})
	p.timers[timer] = struct{}{}
}

func (p *Pipeline) fire(ev Event) {
	if err := p.lifecycle.Fire(ev); err != nil {
		p.logger.Warn("unexpected submission transition", logger.Error(err))
	}
}

func (p *Pipeline) settle() {
	p.fire(EventSettle)
}
