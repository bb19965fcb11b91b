package view

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// FormIDField is the hidden input that names the form in plain posts.
const FormIDField = "_form"

// Live is a form document together with the session serving it. Forms
// without a session are rendered without any event wiring.
type Live struct {
	Session string
	Doc     *form.Form
}

func (l Live) wired() bool {
	return l.Session != "" && l.Doc.Validate
}

func (l Live) base() string {
	return "/forms/" + url.PathEscape(l.Session)
}

// StreamURL is the datastar stream of the session.
func (l Live) StreamURL() string { return l.base() + "/stream" }

func (l Live) SubmitURL() string   { return l.base() + "/submit" }
func (l Live) FallbackURL() string { return l.base() + "/fallback" }

func (l Live) EventURL(field, event string) string {
	return l.base() + "/fields/" + url.PathEscape(field) + "/" + event
}

// SignalPath is the datastar signal bound to a field's value.
func SignalPath(formID, field string) string {
	return "fields." + formID + "." + field
}

// Signals returns the value signals of doc, used to resync the client after
// the server rewrote values.
func Signals(doc *form.Form) map[string]any {
	return map[string]any{
		"fields": map[string]any{doc.ID: doc.Values()},
	}
}

func action(method, target string) string {
	return fmt.Sprintf("@%s('%s')", method, target)
}

// Form renders the whole form element. Patching it replaces every part of
// the document at once.
func Form(l Live) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		doc := l.Doc

		h.raw("<form")
		h.attr("id", doc.ElementID())
		h.attr("class", "contact-form")
		h.flag("novalidate", doc.Validate)
		if l.wired() {
			h.raw(" data-validate")
			h.attr("method", "post")
			h.attr("action", l.FallbackURL())
			h.attr("data-on-submit", action("post", l.SubmitURL()))
		}
		h.raw(">")

		h.raw(`<input type="hidden"`)
		h.attr("name", FormIDField)
		h.attr("value", doc.ID)
		h.raw(">")

		if doc.Title != "" {
			h.raw("<h2>")
			h.text(doc.Title)
			h.raw("</h2>")
		}
		for _, f := range doc.Fields {
			h.component(ctx, FieldGroup(l, f.Name))
		}
		if doc.Message != nil || doc.StatusSlot || l.wired() {
			h.component(ctx, MessageSlot(doc))
		}
		h.component(ctx, SubmitButton(doc))
		h.raw("</form>")
		return h.err
	})
}

// FieldGroup renders the group of one field: label, control, counter and
// error node.
func FieldGroup(l Live, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := l.Doc.Field(name)
		if f == nil {
			return fmt.Errorf("%w: %q", form.ErrUnknownField, name)
		}
		h := &html{w: w}
		id := l.Doc.InputID(f.Name)

		h.raw(`<div class="form-group"`)
		h.attr("id", l.Doc.GroupID(f.Name))
		h.raw(">")

		h.raw("<label")
		h.attr("for", id)
		h.raw(">")
		h.text(f.Label)
		if f.Required {
			h.raw(` <span class="required" aria-hidden="true">*</span>`)
		}
		h.raw("</label>")

		control(h, l, f, id)

		if f.Counter != nil {
			h.raw(`<div class="character-counter`)
			if f.Counter.Warning {
				h.raw(" warning")
			}
			h.raw(`"`)
			h.attr("id", id+"-counter")
			h.raw(">")
			h.text(strconv.Itoa(f.Counter.Current) + "/" + strconv.Itoa(f.Counter.Max))
			h.raw("</div>")
		}

		if f.Error != nil {
			h.raw(`<div class="field-error"`)
			h.attr("id", id+"-error")
			h.attr("role", f.Error.Role)
			h.raw(">")
			h.text(f.Error.Message)
			h.raw("</div>")
		}

		h.raw("</div>")
		return h.err
	})
}

func control(h *html, l Live, f *form.Field, id string) {
	common := func() {
		h.attr("id", id)
		h.attr("name", f.Name)
		h.flag("required", f.Required)
		if f.Invalid {
			h.attr("class", "field-invalid")
			h.attr("aria-invalid", "true")
			h.attr("aria-describedby", id+"-error")
		}
		if l.wired() {
			h.attr("data-bind", SignalPath(l.Doc.ID, f.Name))
			h.attr("data-on-input", action("post", l.EventURL(f.Name, "input")))
			h.attr("data-on-blur", action("post", l.EventURL(f.Name, "blur")))
			h.attr("data-on-focus", action("post", l.EventURL(f.Name, "focus")))
		}
	}

	switch f.Type {
	case validator.TypeTextarea:
		h.raw("<textarea")
		common()
		if f.Rows > 0 {
			h.intAttr("rows", f.Rows)
		}
		if f.MaxLength > 0 {
			h.intAttr("maxlength", f.MaxLength)
		}
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		if f.AutoResize {
			h.raw(" data-auto-resize")
			if f.Height > 0 {
				h.attr("style", "height: "+strconv.Itoa(f.Height)+"px")
			} else {
				h.attr("style", "height: auto")
			}
		}
		h.raw(">")
		h.text(f.Value)
		h.raw("</textarea>")

	case validator.TypeSelect:
		h.raw("<select")
		common()
		h.raw(">")
		for _, opt := range f.Options {
			h.raw("<option")
			h.attr("value", opt)
			h.flag("selected", opt == f.Value)
			h.raw(">")
			h.text(opt)
			h.raw("</option>")
		}
		h.raw("</select>")

	default:
		h.raw("<input")
		h.attr("type", string(f.Type))
		common()
		h.attr("value", f.Value)
		if f.MaxLength > 0 {
			h.intAttr("maxlength", f.MaxLength)
		}
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		h.raw(">")
	}
}

// MessageSlot renders the container of the status message. The container
// is always present so the banner can be patched in and out by id.
func MessageSlot(doc *form.Form) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="form-message-slot"`)
		h.attr("id", doc.MessageID())
		h.raw(">")

		switch m := doc.Message; {
		case m != nil:
			h.raw(`<div class="form-message form-message-` + templ.EscapeString(string(m.Kind)) + `"`)
			h.attr("role", m.Role)
			if m.Fading {
				h.attr("style", "opacity: 0")
			}
			h.raw(">")
			h.text(m.Text)
			h.raw("</div>")
		case doc.StatusSlot:
			h.raw(`<div class="form-message"></div>`)
		}

		h.raw("</div>")
		return h.err
	})
}

func SubmitButton(doc *form.Form) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<button type="submit"`)
		h.attr("id", doc.SubmitID())
		h.flag("disabled", doc.Submit.Disabled)
		h.raw(">")
		h.text(doc.Submit.Label)
		h.raw("</button>")
		return h.err
	})
}
