package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/binder"
)

type eventRequest struct {
	Session string `path:"session" json:"-"`
	Field   string `path:"field" json:"-"`
	Attempt int    `path:"attempt" json:"-"`

	Fields map[string]map[string]string `json:"fields"`
}

func withRoute(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPath(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged params", func(t *testing.T) {
		t.Parallel()
		r := withRoute(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{
			"session": "abc",
			"field":   "email",
			"attempt": "3",
		})
		var req eventRequest
		require.NoError(t, binder.Path()(r, &req))
		assert.Equal(t, "abc", req.Session)
		assert.Equal(t, "email", req.Field)
		assert.Equal(t, 3, req.Attempt)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()
		r := withRoute(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"attempt": "x"})
		var req eventRequest
		assert.ErrorIs(t, binder.Path()(r, &req), binder.ErrInvalidPath)
	})

	t.Run("no route context", func(t *testing.T) {
		t.Parallel()
		var req eventRequest
		assert.ErrorIs(t, binder.Path()(httptest.NewRequest(http.MethodGet, "/", nil), &req), binder.ErrNotApplicable)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		var s string
		assert.ErrorIs(t, binder.Path()(httptest.NewRequest(http.MethodGet, "/", nil), &s), binder.ErrInvalidTarget)
		assert.ErrorIs(t, binder.Path()(httptest.NewRequest(http.MethodGet, "/", nil), eventRequest{}), binder.ErrInvalidTarget)
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	type fallbackRequest struct {
		Session string            `path:"session"`
		Values  map[string]string `form:"*"`
		Email   string            `form:"email"`
		Agree   bool              `form:"agree"`
	}

	t.Run("url encoded with catch-all", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"email": {"ada@example.com"}, "fullName": {"Ada"}, "agree": {"on"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var req fallbackRequest
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "ada@example.com", req.Email)
		assert.True(t, req.Agree)
		assert.Equal(t, map[string]string{"email": "ada@example.com", "fullName": "Ada", "agree": "on"}, req.Values)
		assert.Empty(t, req.Session)
	})

	t.Run("json is not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")
		var req fallbackRequest
		assert.ErrorIs(t, binder.Form()(r, &req), binder.ErrNotApplicable)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		r.Header.Set("Content-Type", "text/plain")
		var req fallbackRequest
		assert.ErrorIs(t, binder.Form()(r, &req), binder.ErrUnsupportedMediaType)
	})

	t.Run("catch-all must be a string map", func(t *testing.T) {
		t.Parallel()
		type bad struct {
			Values map[string]int `form:"*"`
		}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.ErrorIs(t, binder.Form()(r, &bad{}), binder.ErrInvalidForm)
	})
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fields":{"contact":{"email":"ada@"}}}`))
		r.Header.Set("Content-Type", "application/json")
		var req eventRequest
		require.NoError(t, binder.Signals()(r, &req))
		assert.Equal(t, "ada@", req.Fields["contact"]["email"])
	})

	t.Run("query parameter", func(t *testing.T) {
		t.Parallel()
		q := url.Values{"datastar": {`{"fields":{"contact":{"subject":"Hi"}}}`}}
		r := httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil)
		var req eventRequest
		require.NoError(t, binder.Signals()(r, &req))
		assert.Equal(t, "Hi", req.Fields["contact"]["subject"])
	})

	t.Run("no signals", func(t *testing.T) {
		t.Parallel()
		var req eventRequest
		assert.ErrorIs(t, binder.Signals()(httptest.NewRequest(http.MethodGet, "/", nil), &req), binder.ErrNotApplicable)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fields":`))
		r.Header.Set("Content-Type", "application/json")
		var req eventRequest
		assert.ErrorIs(t, binder.Signals()(r, &req), binder.ErrInvalidSignals)
	})
}
