package form

import (
	"strings"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// Checker applies validation results to the document.
type Checker struct {
	cfg validator.Config
}

func NewChecker(cfg validator.Config) *Checker {
	return &Checker{cfg: cfg}
}

func (c *Checker) Config() validator.Config {
	return c.cfg
}

// ValidateField validates f's trimmed value and updates its decoration.
// Previous decoration is always cleared first, so repeated calls never
// stack error nodes.
func (c *Checker) ValidateField(f *Field) bool {
	value := strings.TrimSpace(f.Value)

	ClearFieldError(f)

	res := c.cfg.Validate(f.Meta(), value)
	if !res.Valid {
		ShowFieldError(f, res.Message)
		return false
	}
	return true
}

// ValidateForm validates every field and reports whether all passed.
// It does not stop at the first failure: each invalid field gets its own error.
func (c *Checker) ValidateForm(form *Form) bool {
	valid := true
	for _, f := range form.Fields {
		if !c.ValidateField(f) {
			valid = false
		}
	}
	return valid
}

// Errors collects the error nodes currently shown in form, or nil when no
// field is decorated.
func Errors(form *Form) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, f := range form.Fields {
		if f.Invalid && f.Error != nil {
			errs.Add(validator.ValidationError{Field: f.Name, Message: f.Error.Message})
		}
	}
	return errs
}

// ShowFieldError marks f invalid and replaces its group's error node.
func ShowFieldError(f *Field, message string) {
	f.Invalid = true
	f.Error = &ErrorNode{Message: message, Role: RoleAlert}
}

// ClearFieldError removes the invalid marker and the error node from f.
// It reports whether f was decorated.
func ClearFieldError(f *Field) bool {
	had := f.Decorated()
	f.Invalid = false
	f.Error = nil
	return had
}

// ClearAllErrors removes every field decoration in form.
func ClearAllErrors(form *Form) {
	for _, f := range form.Fields {
		ClearFieldError(f)
	}
}
