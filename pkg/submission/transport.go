package submission

import "context"

// Values is the submitted form data keyed by field name.
type Values map[string]string

// Result is what a transport reports back. A Result with Success false is a
// failure even when no error is returned.
type Result struct {
	Success bool
	Message string
}

// Transport delivers a submission. Implementations must be safe for
// concurrent use; every live form shares the same transport.
type Transport interface {
	Submit(ctx context.Context, values Values) (Result, error)
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, values Values) (Result, error)

func (f TransportFunc) Submit(ctx context.Context, values Values) (Result, error) {
	return f(ctx, values)
}

// FormScoped is implemented by transports that record which form a
// submission came from.
type FormScoped interface {
	ForForm(formID string) Transport
}

// ForForm returns the variant of t bound to formID, or t itself when it
// does not care about forms.
func ForForm(t Transport, formID string) Transport {
	if fs, ok := t.(FormScoped); ok {
		return fs.ForForm(formID)
	}
	return t
}

// Named is implemented by transports that want a readable name in logs.
type Named interface {
	Name() string
}

func transportName(t Transport) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	return "custom"
}
