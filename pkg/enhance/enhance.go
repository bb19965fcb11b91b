package enhance

import (
	"unicode/utf8"

	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// WarningRatio is the share of the limit above which a counter warns.
const WarningRatio = 0.9

// Enhancer maintains counters and auto-resize heights.
type Enhancer struct {
	measurer Measurer
	counters bool
	resize   bool
}

type Option func(*Enhancer)

// WithMeasurer replaces the height estimator used by auto-resize.
func WithMeasurer(m Measurer) Option {
	return func(e *Enhancer) {
		if m != nil {
			e.measurer = m
		}
	}
}

func WithoutCounter() Option {
	return func(e *Enhancer) {
		e.counters = false
	}
}

func WithoutAutoResize() Option {
	return func(e *Enhancer) {
		e.resize = false
	}
}

func New(opts ...Option) *Enhancer {
	e := &Enhancer{
		measurer: DefaultMeasurer(),
		counters: true,
		resize:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attach creates a counter for every textarea with a maxlength. Auto-resize
// heights start at "auto" and only change on input.
func (e *Enhancer) Attach(f *form.Form) {
	if !e.counters {
		return
	}
	for _, fld := range f.Fields {
		if hasCounter(fld) {
			fld.Counter = NewCounter(fld.Value, fld.MaxLength)
		}
	}
}

// Update refreshes the field's enhancements after its value changed and
// reports whether anything visible changed. Its signature matches
// form.InputHook.
func (e *Enhancer) Update(fld *form.Field) bool {
	changed := false

	if e.counters && fld.Counter != nil {
		next := NewCounter(fld.Value, fld.Counter.Max)
		if *next != *fld.Counter {
			fld.Counter = next
			changed = true
		}
	}

	if e.resize && fld.AutoResize && fld.Type == validator.TypeTextarea {
		h := e.measurer.Height(fld.Value, fld.Rows)
		if h != fld.Height {
			fld.Height = h
			changed = true
		}
	}

	return changed
}

// Refresh recomputes counters for the whole form, e.g. after a reset.
// Heights are left alone; Form.Reset already returned them to "auto".
func (e *Enhancer) Refresh(f *form.Form) bool {
	if !e.counters {
		return false
	}
	changed := false
	for _, fld := range f.Fields {
		if fld.Counter == nil {
			continue
		}
		next := NewCounter(fld.Value, fld.Counter.Max)
		if *next != *fld.Counter {
			fld.Counter = next
			changed = true
		}
	}
	return changed
}

// NewCounter counts value in characters against max.
func NewCounter(value string, max int) *form.Counter {
	n := utf8.RuneCountInString(value)
	return &form.Counter{
		Current: n,
		Max:     max,
		Warning: float64(n) > float64(max)*WarningRatio,
	}
}

func hasCounter(f *form.Field) bool {
	return f.Type == validator.TypeTextarea && f.MaxLength > 0
}
