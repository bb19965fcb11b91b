package submission

import (
	"context"

	"github.com/dmitrymomot/contactform/pkg/formpost"
)

// HTTPTransport forwards submissions to a hosted form backend.
type HTTPTransport struct {
	client *formpost.Client
}

func NewHTTPTransport(client *formpost.Client) *HTTPTransport {
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) Name() string { return "http" }

func (t *HTTPTransport) Submit(ctx context.Context, values Values) (Result, error) {
	if err := t.client.Post(ctx, values); err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: DefaultStubMessage}, nil
}
