package clientip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resolver   *clientip.Resolver
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:     "cloudflare header wins",
			resolver: clientip.Default(),
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			want:       "203.0.113.195",
		},
		{
			name:       "first valid forwarded entry",
			resolver:   clientip.Default(),
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			want:       "198.51.100.178",
		},
		{
			name:       "invalid header falls through",
			resolver:   clientip.Default(),
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip", "X-Real-IP": "192.168.1.1"},
			remoteAddr: "10.0.0.1:54321",
			want:       "192.168.1.1",
		},
		{
			name:       "remote addr fallback",
			resolver:   clientip.Default(),
			remoteAddr: "10.0.0.1:54321",
			want:       "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			resolver:   clientip.Default(),
			remoteAddr: "10.0.0.1",
			want:       "10.0.0.1",
		},
		{
			name:       "ipv6 remote addr",
			resolver:   clientip.Default(),
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv4 mapped ipv6 is unmapped",
			resolver:   clientip.Default(),
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.1"},
			remoteAddr: "10.0.0.1:1",
			want:       "192.0.2.1",
		},
		{
			name:       "untrusted headers are ignored",
			resolver:   clientip.New(),
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			want:       "10.0.0.1",
		},
		{
			name:       "nothing parses",
			resolver:   clientip.New(),
			remoteAddr: "pipe",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.resolver.Resolve(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	h := clientip.Default().Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = clientip.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.7", seen)
	assert.Empty(t, clientip.FromContext(context.Background()))
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatText),
		logger.WithContextExtractors(clientip.Extractor()),
	)
	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.9"), "hello")
	log.InfoContext(context.Background(), "anonymous")

	out := buf.String()
	assert.Contains(t, out, "client_ip=192.0.2.9")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("client_ip=")))
}
