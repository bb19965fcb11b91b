package formpost

import (
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
)

// Attempt describes one delivery attempt.
type Attempt struct {
	Number     int
	StatusCode int
	Duration   time.Duration
	Err        error
}

// AttemptHook observes every attempt, e.g. for logging.
type AttemptHook func(Attempt)

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithEncoding(e Encoding) Option {
	return func(cl *Client) {
		if e == EncodingForm || e == EncodingJSON {
			cl.encoding = e
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

func WithMaxRetries(n int) Option {
	return func(cl *Client) {
		if n >= 0 {
			cl.maxRetries = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(cl *Client) {
		if b != nil {
			cl.backoff = b
		}
	}
}

// WithClock sets the clock used for retry waits and attempt timing.
func WithClock(c clock.Clock) Option {
	return func(cl *Client) {
		if c != nil {
			cl.clock = c
		}
	}
}

func WithHeader(key, value string) Option {
	return func(cl *Client) {
		if key != "" && value != "" {
			cl.headers.Set(key, value)
		}
	}
}

func WithAttemptHook(h AttemptHook) Option {
	return func(cl *Client) {
		cl.onAttempt = h
	}
}

// WithSigningSecret signs every request body with HMAC-SHA256. See Sign.
func WithSigningSecret(secret string) Option {
	return func(cl *Client) {
		cl.secret = secret
	}
}

// FromConfig turns a Config into options. The URL is passed to New separately.
func FromConfig(cfg Config) []Option {
	opts := []Option{
		WithEncoding(cfg.Encoding),
		WithTimeout(cfg.Timeout),
		WithMaxRetries(cfg.MaxRetries),
		WithSigningSecret(cfg.Secret),
	}
	for k, v := range cfg.Headers {
		opts = append(opts, WithHeader(k, v))
	}
	return opts
}
