package formpost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/benbjohnson/clock"
)

// Client posts form values to a hosted form backend with retries.
type Client struct {
	endpoint   string
	http       *http.Client
	encoding   Encoding
	timeout    time.Duration
	maxRetries int
	backoff    Backoff
	clock      clock.Clock
	headers    http.Header
	secret     string
	onAttempt  AttemptHook
}

// New validates endpoint and returns a Client. Only http and https
// endpoints are accepted.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidURL)
	}

	c := &Client{
		endpoint:   endpoint,
		http:       &http.Client{},
		encoding:   EncodingJSON,
		timeout:    10 * time.Second,
		maxRetries: 2,
		backoff:    DefaultBackoff(),
		clock:      clock.New(),
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Post delivers values, retrying temporary failures. 4xx replies other
// than 408, 425 and 429 are permanent and not retried.
func (c *Client) Post(ctx context.Context, values map[string]string) error {
	body, contentType, err := c.encode(values)
	if err != nil {
		return err
	}

	var sig *Signature
	if c.secret != "" {
		s, err := Sign(c.secret, body, c.clock.Now())
		if err != nil {
			return err
		}
		sig = &s
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			t := c.clock.Timer(c.backoff.NextInterval(attempt))
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}

		status, err := c.attempt(ctx, attempt+1, body, contentType, sig)
		if err == nil {
			return nil
		}
		lastErr = err

		if isPermanent(status) {
			return fmt.Errorf("%w: %w", ErrPermanentFailure, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrDeliveryFailed, c.maxRetries+1, lastErr)
}

func (c *Client) attempt(ctx context.Context, n int, body []byte, contentType string, sig *Signature) (int, error) {
	start := c.clock.Now()
	status, err := c.do(ctx, body, contentType, sig)
	if c.onAttempt != nil {
		c.onAttempt(Attempt{Number: n, StatusCode: status, Duration: c.clock.Since(start), Err: err})
	}
	return status, err
}

func (c *Client) do(ctx context.Context, body []byte, contentType string, sig *Signature) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "contactform/1.0")
	for k, v := range c.headers {
		req.Header[k] = v
	}
	if sig != nil {
		sig.apply(req.Header)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrTemporaryFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return resp.StatusCode, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, replyMessage(raw))
}

func (c *Client) encode(values map[string]string) ([]byte, string, error) {
	if c.encoding == EncodingForm {
		form := make(url.Values, len(values))
		for k, v := range values {
			form.Set(k, v)
		}
		return []byte(form.Encode()), "application/x-www-form-urlencoded", nil
	}

	data, err := json.Marshal(values)
	if err != nil {
		return nil, "", fmt.Errorf("marshal values: %w", err)
	}
	return data, "application/json", nil
}

// replyMessage pulls a readable reason out of an error reply. Formspree
// answers {"error": "..."} or {"errors": [{"message": "..."}]}.
func replyMessage(raw []byte) string {
	var reply struct {
		Error  string `json:"error"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(raw, &reply) == nil {
		if reply.Error != "" {
			return reply.Error
		}
		msgs := make([]string, 0, len(reply.Errors))
		for _, e := range reply.Errors {
			msgs = append(msgs, e.Message)
		}
		if len(msgs) > 0 {
			sort.Strings(msgs)
			return strings.Join(msgs, "; ")
		}
	}

	return truncate(strings.ReplaceAll(string(raw), "\n", " "), maxReplyBytes)
}

const maxReplyBytes = 200

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func isPermanent(status int) bool {
	if status < 400 || status >= 500 {
		return false
	}
	switch status {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return true
}
