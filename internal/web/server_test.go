package web_test

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/internal/live"
	"github.com/dmitrymomot/contactform/internal/web"
	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/submission"
)

type fixture struct {
	manager *live.Manager
	router  http.Handler
	clock   *clock.Mock
	sent    atomic.Int32

	mu   sync.Mutex
	last submission.Values
}

func (f *fixture) lastValues() submission.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func newFixture(t *testing.T, opts ...web.Option) *fixture {
	t.Helper()
	f := &fixture{clock: clock.NewMock()}
	transport := submission.TransportFunc(func(_ context.Context, v submission.Values) (submission.Result, error) {
		f.mu.Lock()
		f.last = v
		f.mu.Unlock()
		f.sent.Add(1)
		return submission.Result{Success: true}, nil
	})
	f.manager = live.NewManager(form.DefaultSchema(), transport, live.WithClock(f.clock))
	t.Cleanup(f.manager.Close)
	f.router = web.New(f.manager, opts...).Routes()
	return f
}

func (f *fixture) open(t *testing.T) *live.Session {
	t.Helper()
	s, err := f.manager.Open("contact")
	require.NoError(t, err)
	return s
}

func (f *fixture) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	return rec
}

func datastarPost(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set(handler.DataStarRequestHeader, "true")
	return r
}

func formPost(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func validValues() url.Values {
	return url.Values{
		"_form":    {"contact"},
		"fullName": {"Ada Lovelace"},
		"email":    {"ada@example.com"},
		"subject":  {"Engines"},
		"message":  {"Let us talk about the analytical engine."},
	}
}

func TestPage(t *testing.T) {
	t.Parallel()
	f := newFixture(t, web.WithTitle("Say hello"))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Say hello</title>")
	assert.Contains(t, body, `<form id="form-contact" class="contact-form" novalidate data-validate`)
	assert.Contains(t, body, `<form id="form-newsletter" class="contact-form">`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, 1, f.manager.Len())
}

func TestFieldEvents(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)
	base := "/forms/" + s.ID() + "/fields/"

	rec := f.do(datastarPost(base+"email/input", `{"fields":{"contact":{"email":"ada@"}}}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "ada@", s.Snapshot().Field("email").Value)

	require.Eventually(t, func() bool {
		f.clock.Add(100 * time.Millisecond)
		return s.Snapshot().Field("email").Invalid
	}, time.Second, 5*time.Millisecond)

	rec = f.do(datastarPost(base+"email/focus", `{}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, s.Snapshot().Field("email").Decorated())

	rec = f.do(datastarPost(base+"fullName/blur", `{}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "This field is required", s.Snapshot().Field("fullName").Error.Message)
}

func TestFieldEvents_Errors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)
	base := "/forms/" + s.ID() + "/fields/"

	tests := []struct {
		name   string
		target string
		body   string
		code   int
	}{
		{"unknown field", base + "nope/blur", `{}`, http.StatusNotFound},
		{"unknown event", base + "email/change", `{}`, http.StatusNotFound},
		{"missing value", base + "email/input", `{"fields":{}}`, http.StatusBadRequest},
		{"malformed signals", base + "email/input", `{"fields":`, http.StatusBadRequest},
		{"unknown session", "/forms/missing/fields/email/blur", `{}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			rec := f.do(r)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	t.Run("datastar errors become toasts", func(t *testing.T) {
		t.Parallel()
		rec := f.do(datastarPost("/forms/missing/submit", `{}`))
		body := rec.Body.String()
		assert.Contains(t, body, "data: selector #toasts")
		assert.Contains(t, body, `class="toast toast-warning"`)
	})
}

func TestSubmit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)

	rec := f.do(datastarPost("/forms/"+s.ID()+"/submit", `{}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "form-message-error")
	assert.Contains(t, rec.Body.String(), "Please fix the errors below and try again")
	assert.Equal(t, int32(0), f.sent.Load())

	for name, v := range validValues() {
		if name != "_form" {
			require.NoError(t, s.Input(name, v[0]))
		}
	}
	rec = f.do(datastarPost("/forms/"+s.ID()+"/submit", `{}`))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, `<div class="form-message form-message-success" role="status">Form submitted successfully!</div>`)
	assert.Contains(t, body, `<button type="submit" id="form-contact-submit">Send Message</button>`)
	assert.Equal(t, int32(1), f.sent.Load())
	assert.Empty(t, s.Snapshot().Field("email").Value)
}

func TestSubmit_UsesSignalsSentWithSubmit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)
	require.NoError(t, s.Input("fullName", "A"))

	body := `{"fields":{"contact":{"fullName":"Ada Lovelace","email":"ada@example.com","subject":"Engines","message":"Let us talk about the analytical engine."}}}`
	rec := f.do(datastarPost("/forms/"+s.ID()+"/submit", body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Form submitted successfully!")
	require.Equal(t, int32(1), f.sent.Load())
	assert.Equal(t, "Ada Lovelace", f.lastValues()["fullName"])
	assert.Equal(t, "ada@example.com", f.lastValues()["email"])

	t.Run("signals of another form are ignored", func(t *testing.T) {
		s := f.open(t)
		rec := f.do(datastarPost("/forms/"+s.ID()+"/submit", `{"fields":{"newsletter":{"email":"ada@example.com"}}}`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please fix the errors below and try again")
		assert.Equal(t, int32(1), f.sent.Load())
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)

	rec := f.do(formPost("/forms/"+s.ID()+"/fallback", url.Values{"_form": {"contact"}, "email": {"nope"}}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "Please enter a valid email address")
	assert.Contains(t, body, `value="nope"`)

	rec = f.do(formPost("/forms/"+s.ID()+"/fallback", validValues()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Form submitted successfully!")
	assert.Equal(t, int32(1), f.sent.Load())

	t.Run("expired session is reopened", func(t *testing.T) {
		rec := f.do(formPost("/forms/gone/fallback", validValues()))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Form submitted successfully!")
		assert.Equal(t, int32(2), f.sent.Load())
	})

	t.Run("unknown form", func(t *testing.T) {
		rec := f.do(formPost("/forms/gone/fallback", url.Values{"_form": {"newsletter"}}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitLimiter(t *testing.T) {
	t.Parallel()
	mock := clock.NewMock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(mock), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute}, mock)
	require.NoError(t, err)

	f := newFixture(t, web.WithSubmitLimiter(limiter), web.WithClientIP(clientip.New("X-Real-IP")))
	s := f.open(t)

	post := func(ip string) *httptest.ResponseRecorder {
		r := formPost("/forms/"+s.ID()+"/fallback", url.Values{"_form": {"contact"}})
		r.Header.Set("X-Real-IP", ip)
		return f.do(r)
	}

	rec := post("192.0.2.1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = post("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many submissions")

	// other clients have their own bucket
	rec = post("192.0.2.2")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	mock.Add(time.Minute)
	rec = post("192.0.2.1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// field events are never throttled
	for range 3 {
		rec = f.do(datastarPost("/forms/"+s.ID()+"/fields/email/focus", `{}`))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestSubmitLimiter_IgnoresForwardedHeadersByDefault(t *testing.T) {
	t.Parallel()
	mock := clock.NewMock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(mock), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute}, mock)
	require.NoError(t, err)

	f := newFixture(t, web.WithSubmitLimiter(limiter))
	s := f.open(t)

	post := func(forged string) *httptest.ResponseRecorder {
		r := formPost("/forms/"+s.ID()+"/fallback", url.Values{"_form": {"contact"}})
		r.Header.Set("X-Forwarded-For", forged)
		r.Header.Set("X-Real-IP", forged)
		return f.do(r)
	}

	assert.Equal(t, http.StatusUnprocessableEntity, post("192.0.2.1").Code)
	// a fresh forged address still lands in the connection's bucket
	assert.Equal(t, http.StatusTooManyRequests, post("192.0.2.2").Code)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := newFixture(t).do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	failing := newFixture(t, web.WithReadinessChecks(func(context.Context) error { return errors.New("down") }))
	rec = failing.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	rec := newFixture(t).do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>404</h1>")
}

// readUntil scans SSE lines until one contains want.
func readUntil(t *testing.T, r *bufio.Reader, want string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err, "stream ended before %q", want)
		if strings.Contains(line, want) {
			return
		}
	}
}

func TestStream(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/forms/"+s.ID()+"/stream", nil)
	require.NoError(t, err)
	req.Header.Set(handler.DataStarRequestHeader, "true")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	r := bufio.NewReader(resp.Body)
	readUntil(t, r, `<form id="form-contact"`)
	readUntil(t, r, "datastar-patch-signals")
	require.Eventually(t, s.Watched, time.Second, 5*time.Millisecond)

	_, err = s.Blur("email")
	require.NoError(t, err)
	readUntil(t, r, `<div class="field-error" id="contact-email-error" role="alert">This field is required</div>`)

	require.NoError(t, s.Input("message", "Hi"))
	readUntil(t, r, `2/1000`)

	f.manager.Discard(s.ID())
	for {
		if _, err := r.ReadString('\n'); err != nil {
			break
		}
	}
}

func TestStream_RequiresDatastar(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.open(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/forms/"+s.ID()+"/stream", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
