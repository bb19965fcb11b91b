package form

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/dmitrymomot/contactform/pkg/debounce"
)

// ChangeKind tells renderers which part of the document changed.
type ChangeKind string

const (
	ChangeField   ChangeKind = "field"
	ChangeMessage ChangeKind = "message"
	ChangeSubmit  ChangeKind = "submit"
	ChangeForm    ChangeKind = "form"
)

// Change describes one document mutation. Field is set for ChangeField.
type Change struct {
	Kind  ChangeKind
	Field string
}

func FieldChanged(name string) Change {
	return Change{Kind: ChangeField, Field: name}
}

// ChangeFunc receives every change after the mutation has been applied.
// It is called without the document lock held.
type ChangeFunc func(Change)

// InputHook runs under the document lock after a field value changes and
// reports whether it altered anything that has to be re-rendered.
type InputHook func(f *Field) bool

// Editor serialises mutations of a form and announces them.
type Editor interface {
	// Edit runs fn with exclusive access to the form, then publishes changes.
	Edit(fn func(f *Form), changes ...Change)
	// Snapshot returns a deep copy of the current document.
	Snapshot() *Form
}

// Controller wires the interaction events of one form to the checker:
// input schedules a debounced validation, blur validates at once and
// focus clears decoration without validating.
type Controller struct {
	form    *Form
	checker *Checker

	onChange   ChangeFunc
	inputHooks []InputHook

	mu         sync.Mutex
	debouncers map[string]*debounce.Debouncer[string]
	closed     bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	clock    clock.Clock
	onChange ChangeFunc
	hooks    []InputHook
}

// WithClock sets the clock driving the debounce timers.
func WithClock(c clock.Clock) ControllerOption {
	return func(cfg *controllerConfig) {
		if c != nil {
			cfg.clock = c
		}
	}
}

func WithChangeFunc(fn ChangeFunc) ControllerOption {
	return func(cfg *controllerConfig) {
		cfg.onChange = fn
	}
}

func WithInputHook(h InputHook) ControllerOption {
	return func(cfg *controllerConfig) {
		if h != nil {
			cfg.hooks = append(cfg.hooks, h)
		}
	}
}

// NewController takes ownership of form. Callers must not touch form
// directly afterwards; use Edit and Snapshot.
func NewController(form *Form, checker *Checker, opts ...ControllerOption) *Controller {
	cfg := &controllerConfig{clock: clock.New()}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Controller{
		form:       form,
		checker:    checker,
		onChange:   cfg.onChange,
		inputHooks: cfg.hooks,
		debouncers: make(map[string]*debounce.Debouncer[string], len(form.Fields)),
	}

	delay := checker.Config().DebounceDelay
	for _, f := range form.Fields {
		c.debouncers[f.Name] = debounce.New(delay, c.validateDebounced, debounce.WithClock(cfg.clock))
	}

	return c
}

func (c *Controller) ID() string {
	return c.form.ID
}

func (c *Controller) Checker() *Checker {
	return c.checker
}

// Input records a new value for the field and schedules its validation.
func (c *Controller) Input(name, value string) error {
	c.mu.Lock()
	f, err := c.fieldLocked(name)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	f.Value = value
	changed := false
	for _, hook := range c.inputHooks {
		if hook(f) {
			changed = true
		}
	}
	d := c.debouncers[name]
	c.mu.Unlock()

	d.Trigger(name)
	if changed {
		c.notify(FieldChanged(name))
	}
	return nil
}

// SetValues stores values posted with a submit. Unknown names are ignored
// and no validation is scheduled; the submit validates the whole form.
// Input hooks run for every field whose value changed.
func (c *Controller) SetValues(values map[string]string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	changed := false
	for _, f := range c.form.Fields {
		v, ok := values[f.Name]
		if !ok || v == f.Value {
			continue
		}
		f.Value = v
		changed = true
		for _, hook := range c.inputHooks {
			hook(f)
		}
	}
	c.mu.Unlock()

	if changed {
		c.notify(Change{Kind: ChangeForm})
	}
	return nil
}

// Blur validates the field immediately and returns the result.
func (c *Controller) Blur(name string) (bool, error) {
	c.mu.Lock()
	f, err := c.fieldLocked(name)
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	valid := c.checker.ValidateField(f)
	c.mu.Unlock()

	c.notify(FieldChanged(name))
	return valid, nil
}

// Focus clears the field's error decoration without validating.
func (c *Controller) Focus(name string) error {
	c.mu.Lock()
	f, err := c.fieldLocked(name)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	had := ClearFieldError(f)
	c.mu.Unlock()

	if had {
		c.notify(FieldChanged(name))
	}
	return nil
}

// ValidateForm validates every field of the form.
func (c *Controller) ValidateForm() bool {
	c.mu.Lock()
	valid := c.checker.ValidateForm(c.form)
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeForm})
	return valid
}

func (c *Controller) Edit(fn func(f *Form), changes ...Change) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	fn(c.form)
	c.mu.Unlock()

	for _, ch := range changes {
		c.notify(ch)
	}
}

func (c *Controller) Snapshot() *Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Close stops all pending validations. Events after Close return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	debouncers := c.debouncers
	c.mu.Unlock()

	for _, d := range debouncers {
		d.Stop()
	}
}

func (c *Controller) validateDebounced(name string) {
	c.mu.Lock()
	f, err := c.fieldLocked(name)
	if err != nil {
		c.mu.Unlock()
		return
	}
	c.checker.ValidateField(f)
	c.mu.Unlock()

	c.notify(FieldChanged(name))
}

func (c *Controller) fieldLocked(name string) (*Field, error) {
	if c.closed {
		return nil, ErrClosed
	}
	f := c.form.Field(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

func (c *Controller) notify(ch Change) {
	if c.onChange != nil {
		c.onChange(ch)
	}
}
