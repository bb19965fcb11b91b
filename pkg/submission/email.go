package submission

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/contactform/pkg/email"
)

// EmailTransport mails every submission to a fixed inbox. Replies go to the
// address the visitor entered in ReplyField.
type EmailTransport struct {
	sender     email.Sender
	to         string
	replyField string
	subject    string
	policy     *bluemonday.Policy
}

// NewEmailTransport sends to "to" through sender. Submitted values are
// stripped of all markup before they reach the message body.
func NewEmailTransport(sender email.Sender, to string) *EmailTransport {
	return &EmailTransport{
		sender:     sender,
		to:         to,
		replyField: "email",
		subject:    "subject",
		policy:     bluemonday.StrictPolicy(),
	}
}

func (t *EmailTransport) Name() string { return "email" }

func (t *EmailTransport) Submit(ctx context.Context, values Values) (Result, error) {
	clean := make(Values, len(values))
	for k, v := range values {
		// The policy escapes what it keeps; the template escapes again.
		clean[k] = html.UnescapeString(t.policy.Sanitize(v))
	}

	body, err := email.Render(ctx, notification(clean))
	if err != nil {
		return Result{}, err
	}

	subject := "New contact form message"
	if s := clean[t.subject]; s != "" {
		subject = fmt.Sprintf("%s: %s", subject, s)
	}

	msg := email.Message{
		To:      t.to,
		ReplyTo: strings.TrimSpace(values[t.replyField]),
		Subject: subject,
		HTML:    body,
		Tag:     "contact-form",
	}
	if err := t.sender.Send(ctx, msg); err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: DefaultStubMessage}, nil
}

// notification renders the submitted values as a two-column table, sorted
// by field name.
func notification(values Values) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if _, err := io.WriteString(w, `<h1>New contact form message</h1><table>`); err != nil {
			return err
		}
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, `<tr><th align="left">%s</th><td>%s</td></tr>`,
				templ.EscapeString(k), templ.EscapeString(values[k])); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
}
