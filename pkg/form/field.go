package form

import (
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// ARIA roles carried by rendered feedback.
const (
	RoleAlert  = "alert"
	RoleStatus = "status"
)

// Field is one named input together with the field group around it.
// The group owns at most one error node.
type Field struct {
	Name        string
	Label       string
	Type        validator.FieldType
	Placeholder string
	Options     []string
	Rows        int

	// Default is the value restored by Form.Reset.
	Default  string
	Value    string
	Required bool

	// MaxLength is the maxlength attribute; zero means unconstrained.
	MaxLength  int
	AutoResize bool

	// Invalid is the invalid marker on the input element.
	Invalid bool
	Error   *ErrorNode

	Counter *Counter
	// Height is the inline height in pixels set by auto-resize; zero is "auto".
	Height int
}

// ErrorNode is the error element rendered inside a field group.
type ErrorNode struct {
	Message string
	Role    string
}

// Counter is the character counter rendered below a length-limited textarea.
type Counter struct {
	Current int
	Max     int
	Warning bool
}

func (f *Field) Meta() validator.FieldMeta {
	return validator.FieldMeta{
		Name:     f.Name,
		Type:     f.Type,
		Required: f.Required,
	}
}

// Decorated reports whether the field carries any error decoration.
func (f *Field) Decorated() bool {
	return f.Invalid || f.Error != nil
}

func (f *Field) clone() *Field {
	c := *f
	if f.Options != nil {
		c.Options = append([]string(nil), f.Options...)
	}
	if f.Error != nil {
		e := *f.Error
		c.Error = &e
	}
	if f.Counter != nil {
		cnt := *f.Counter
		c.Counter = &cnt
	}
	return &c
}
