package view_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/internal/web/view"
	"github.com/dmitrymomot/contactform/pkg/enhance"
	"github.com/dmitrymomot/contactform/pkg/form"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func contact(t *testing.T) *form.Form {
	t.Helper()
	spec, err := form.DefaultSchema().Find("contact")
	require.NoError(t, err)
	doc := spec.Build()
	enhance.New().Attach(doc)
	return doc
}

func TestForm_Wired(t *testing.T) {
	t.Parallel()
	doc := contact(t)
	out := render(t, view.Form(view.Live{Session: "s1", Doc: doc}))

	assert.Contains(t, out, `<form id="form-contact" class="contact-form" novalidate data-validate method="post" action="/forms/s1/fallback" data-on-submit="@post(&#39;/forms/s1/submit&#39;)">`)
	assert.Contains(t, out, `<input type="hidden" name="_form" value="contact">`)
	assert.Contains(t, out, `data-bind="fields.contact.email"`)
	assert.Contains(t, out, `data-on-input="@post(&#39;/forms/s1/fields/email/input&#39;)"`)
	assert.Contains(t, out, `data-on-blur="@post(&#39;/forms/s1/fields/email/blur&#39;)"`)
	assert.Contains(t, out, `<div class="character-counter" id="contact-message-counter">0/1000</div>`)
	assert.Contains(t, out, `<option value="General" selected>General</option>`)
	assert.Contains(t, out, `<div class="form-message-slot" id="form-contact-status"><div class="form-message"></div></div>`)
	assert.Contains(t, out, `<button type="submit" id="form-contact-submit">Send Message</button>`)
	assert.NotContains(t, out, "field-error")
}

func TestForm_Static(t *testing.T) {
	t.Parallel()
	spec, err := form.DefaultSchema().Find("newsletter")
	require.NoError(t, err)
	out := render(t, view.Form(view.Live{Doc: spec.Build()}))

	assert.NotContains(t, out, "data-validate")
	assert.NotContains(t, out, "data-on-")
	assert.NotContains(t, out, "form-message")
	assert.Contains(t, out, `<input type="email" id="newsletter-email" name="email" required value="">`)
}

func TestFieldGroup_Error(t *testing.T) {
	t.Parallel()
	doc := contact(t)
	f := doc.Field("email")
	f.Value = `"><script>`
	form.ShowFieldError(f, "Please enter a valid email address")

	out := render(t, view.FieldGroup(view.Live{Session: "s1", Doc: doc}, "email"))
	assert.Contains(t, out, `<div class="form-group" id="contact-email-group">`)
	assert.Contains(t, out, `class="field-invalid" aria-invalid="true"`)
	assert.Contains(t, out, `value="&#34;&gt;&lt;script&gt;"`)
	assert.Contains(t, out, `<div class="field-error" id="contact-email-error" role="alert">Please enter a valid email address</div>`)

	err := view.FieldGroup(view.Live{Doc: doc}, "nope").Render(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, form.ErrUnknownField)
}

func TestFieldGroup_TextareaEnhancements(t *testing.T) {
	t.Parallel()
	doc := contact(t)
	f := doc.Field("message")
	f.Value = "hello <b>"
	f.Height = 88
	f.Counter = enhance.NewCounter(string(make([]byte, 950)), 1000)

	out := render(t, view.FieldGroup(view.Live{Session: "s1", Doc: doc}, "message"))
	assert.Contains(t, out, `rows="4" maxlength="1000"`)
	assert.Contains(t, out, `data-auto-resize style="height: 88px">hello &lt;b&gt;</textarea>`)
	assert.Contains(t, out, `<div class="character-counter warning" id="contact-message-counter">950/1000</div>`)
}

func TestMessageSlot(t *testing.T) {
	t.Parallel()
	doc := contact(t)

	m := doc.ShowMessage(form.MessageSuccess, "Form submitted successfully!")
	assert.Equal(t,
		`<div class="form-message-slot" id="form-contact-status"><div class="form-message form-message-success" role="status">Form submitted successfully!</div></div>`,
		render(t, view.MessageSlot(doc)))

	doc.FadeMessage(m.Seq)
	assert.Contains(t, render(t, view.MessageSlot(doc)), `role="status" style="opacity: 0"`)

	doc.ShowMessage(form.MessageError, "Please fix the errors below and try again")
	assert.Contains(t, render(t, view.MessageSlot(doc)), `<div class="form-message form-message-error" role="alert">`)

	doc.ClearMessage(doc.Message.Seq)
	doc.StatusSlot = false
	assert.Equal(t, `<div class="form-message-slot" id="form-contact-status"></div>`, render(t, view.MessageSlot(doc)))
}

func TestSubmitButton(t *testing.T) {
	t.Parallel()
	doc := contact(t)
	doc.Submit = form.SubmitControl{Label: "Sending...", Disabled: true}
	assert.Equal(t, `<button type="submit" id="form-contact-submit" disabled>Sending...</button>`, render(t, view.SubmitButton(doc)))
}

func TestPage(t *testing.T) {
	t.Parallel()
	spec, err := form.DefaultSchema().Find("newsletter")
	require.NoError(t, err)

	out := render(t, view.Page("Contact", []view.Live{
		{Session: "s1", Doc: contact(t)},
		{Doc: spec.Build()},
	}))
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, view.DataStarScript)
	assert.Contains(t, out, `<div id="toasts"></div>`)
	assert.Contains(t, out, `<section id="form-contact-live" data-on-load="@get(&#39;/forms/s1/stream&#39;)">`)
	assert.Contains(t, out, `<section><form id="form-newsletter"`)
}

func TestErrorComponents(t *testing.T) {
	t.Parallel()
	out := render(t, view.ErrorPage(handler.ErrorPageParams{Error: "not found", StatusCode: 404, RequestID: "r1"}))
	assert.Contains(t, out, "<h1>404</h1><p>not found</p>")
	assert.Contains(t, out, "Request ID: r1")

	assert.Equal(t, `<div class="toast toast-warning" role="alert">bad &lt;input&gt;</div>`,
		render(t, view.Toast(handler.ErrorToastParams{Message: "bad <input>", Type: "warning"})))
}

func TestSignals(t *testing.T) {
	t.Parallel()
	doc := contact(t)
	doc.Field("email").Value = "ada@example.com"
	sig := view.Signals(doc)
	fields := sig["fields"].(map[string]any)
	values := fields["contact"].(map[string]string)
	assert.Equal(t, "ada@example.com", values["email"])
	assert.Equal(t, "General", values["topic"])
	assert.Equal(t, "fields.contact.email", view.SignalPath("contact", "email"))
}
