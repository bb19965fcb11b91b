package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	HTML    string `json:"-"`
	Tag     string `json:"tag,omitempty"`
}

// Validate checks the recipient and reply-to addresses with the same email
// rule the contact form uses, and requires a subject and a body.
func (m Message) Validate() error {
	cfg := validator.DefaultConfig()
	rules := []validator.Rule{
		cfg.Required("to", m.To),
		cfg.Email("to", m.To),
		cfg.Required("subject", m.Subject),
		cfg.Required("html", m.HTML),
	}
	if m.ReplyTo != "" {
		rules = append(rules, cfg.Email("reply_to", m.ReplyTo))
	}
	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrInvalidMessage, err)
	}
	return nil
}

// Render renders a templ component into an HTML body.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return sb.String(), nil
}

// New picks the Postmark sender when tokens are configured and the dev
// sender otherwise.
func New(cfg Config) (Sender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg)
	}
	return NewDevSender(cfg.DevDir), nil
}
