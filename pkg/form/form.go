package form

import "strings"

// MessageKind selects the styling and role of a status message.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// StatusMessage is the form-level banner. A form holds at most one.
type StatusMessage struct {
	Kind MessageKind
	Text string
	Role string
	// Fading is set once the banner has become transparent and is about to
	// be removed.
	Fading bool
	// Seq identifies this banner; every ShowMessage call issues a new one.
	Seq uint64
}

// SubmitControl is the form's submit button.
type SubmitControl struct {
	Label    string
	Disabled bool
}

// Form is the server-side document of one HTML form.
type Form struct {
	ID    string
	Title string
	// Validate is the opt-in marker; forms without it are rendered but
	// never wired to a controller.
	Validate bool
	Fields   []*Field
	// StatusSlot reports that the markup pre-declares the message slot.
	StatusSlot bool
	Message    *StatusMessage
	Submit     SubmitControl

	seq uint64
}

// Field returns the field called name, or nil.
func (f *Form) Field(name string) *Field {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld
		}
	}
	return nil
}

// Values returns the current field values keyed by field name.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.Fields))
	for _, fld := range f.Fields {
		values[fld.Name] = fld.Value
	}
	return values
}

// Reset restores every field to its default value.
// Error decorations are left alone; see ClearAllErrors.
func (f *Form) Reset() {
	for _, fld := range f.Fields {
		fld.Value = fld.Default
		fld.Height = 0
	}
}

// ShowMessage replaces the status message with a new banner and returns it.
// Error banners carry the alert role, success banners the status role.
func (f *Form) ShowMessage(kind MessageKind, text string) *StatusMessage {
	role := RoleStatus
	if kind == MessageError {
		role = RoleAlert
	}
	f.seq++
	f.Message = &StatusMessage{
		Kind: kind,
		Text: text,
		Role: role,
		Seq:  f.seq,
	}
	return f.Message
}

// ClearMessage removes the status message if it is still the banner
// identified by seq. It reports whether anything was removed.
func (f *Form) ClearMessage(seq uint64) bool {
	if f.Message == nil || f.Message.Seq != seq {
		return false
	}
	f.Message = nil
	return true
}

// FadeMessage marks the banner identified by seq as transparent.
func (f *Form) FadeMessage(seq uint64) bool {
	if f.Message == nil || f.Message.Seq != seq {
		return false
	}
	f.Message.Fading = true
	return true
}

// Clone returns a deep copy that can be rendered without holding locks.
func (f *Form) Clone() *Form {
	c := *f
	c.Fields = make([]*Field, len(f.Fields))
	for i, fld := range f.Fields {
		c.Fields[i] = fld.clone()
	}
	if f.Message != nil {
		m := *f.Message
		c.Message = &m
	}
	return &c
}

// Element ids used by renderers to address parts of the document.

func (f *Form) ElementID() string {
	return "form-" + f.ID
}

func (f *Form) MessageID() string {
	return f.ElementID() + "-status"
}

func (f *Form) SubmitID() string {
	return f.ElementID() + "-submit"
}

// InputID is not prefixed with "form-" so field names never collide with
// the form's own element ids.
func (f *Form) InputID(name string) string {
	return sanitizeID(f.ID) + "-" + sanitizeID(name)
}

func (f *Form) GroupID(name string) string {
	return f.InputID(name) + "-group"
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
