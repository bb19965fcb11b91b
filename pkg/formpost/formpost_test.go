package formpost_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/formpost"
)

var values = map[string]string{"email": "ada@example.com", "message": "Hello there, engine fans"}

func TestNew_RejectsBadEndpoints(t *testing.T) {
	t.Parallel()
	for _, u := range []string{"", "ftp://example.com", "http://", "://bad"} {
		_, err := formpost.New(u)
		assert.ErrorIs(t, err, formpost.ErrInvalidURL, u)
	}
}

func TestPost_JSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		var got map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, values, got)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c, err := formpost.New(srv.URL, formpost.WithHeader("X-Api-Key", "secret"))
	require.NoError(t, err)
	require.NoError(t, c.Post(context.Background(), values))
}

func TestPost_Form(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		q, err := url.ParseQuery(string(raw))
		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", q.Get("email"))
	}))
	defer srv.Close()

	c, err := formpost.New(srv.URL, formpost.WithEncoding(formpost.EncodingForm))
	require.NoError(t, err)
	require.NoError(t, c.Post(context.Background(), values))
}

func TestPost_RetriesTemporaryFailures(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var attempts []formpost.Attempt
	c, err := formpost.New(srv.URL,
		formpost.WithMaxRetries(2),
		formpost.WithBackoff(formpost.FixedBackoff(time.Millisecond)),
		formpost.WithAttemptHook(func(a formpost.Attempt) { attempts = append(attempts, a) }),
	)
	require.NoError(t, err)
	require.NoError(t, c.Post(context.Background(), values))

	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, attempts, 3)
	assert.Equal(t, http.StatusServiceUnavailable, attempts[0].StatusCode)
	assert.Error(t, attempts[0].Err)
	assert.Equal(t, 3, attempts[2].Number)
	assert.NoError(t, attempts[2].Err)
}

func TestPost_GivesUp(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := formpost.New(srv.URL, formpost.WithMaxRetries(1), formpost.WithBackoff(formpost.FixedBackoff(time.Millisecond)))
	require.NoError(t, err)
	err = c.Post(context.Background(), values)
	assert.ErrorIs(t, err, formpost.ErrDeliveryFailed)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPost_PermanentFailureCarriesReason(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"errors":[{"message":"should be an email"}]}`)
	}))
	defer srv.Close()

	c, err := formpost.New(srv.URL, formpost.WithBackoff(formpost.FixedBackoff(time.Millisecond)))
	require.NoError(t, err)
	err = c.Post(context.Background(), values)
	require.ErrorIs(t, err, formpost.ErrPermanentFailure)
	assert.Contains(t, err.Error(), "should be an email")
	assert.Equal(t, int32(1), calls.Load())
}

func TestPost_LongReplyIsCutOnRuneBoundary(t *testing.T) {
	t.Parallel()
	// 199 ASCII bytes put the 200-byte cut inside the two-byte "é"
	reply := strings.Repeat("x", 199) + strings.Repeat("é", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, reply)
	}))
	defer srv.Close()

	c, err := formpost.New(srv.URL)
	require.NoError(t, err)
	err = c.Post(context.Background(), values)
	require.ErrorIs(t, err, formpost.ErrPermanentFailure)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), strings.Repeat("x", 199)+"...")
}

func TestPost_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := formpost.New(srv.URL, formpost.WithTimeout(20*time.Millisecond), formpost.WithMaxRetries(0))
	require.NoError(t, err)
	err = c.Post(context.Background(), values)
	assert.ErrorIs(t, err, formpost.ErrTimeout)
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	exp := formpost.ExponentialBackoff{InitialInterval: 100 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2}
	assert.Zero(t, exp.NextInterval(0))
	assert.Equal(t, 100*time.Millisecond, exp.NextInterval(1))
	assert.Equal(t, 400*time.Millisecond, exp.NextInterval(3))
	assert.Equal(t, time.Second, exp.NextInterval(10))

	assert.Equal(t, time.Second, formpost.FixedBackoff(time.Second).NextInterval(4))
}
