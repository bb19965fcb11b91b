package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/requestid"
)

func serve(t *testing.T, header string) (seen, echoed string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, "")
		assert.Equal(t, seen, echoed)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, "edge-42_a")
		assert.Equal(t, "edge-42_a", seen)
		assert.Equal(t, "edge-42_a", echoed)
	})

	for name, bad := range map[string]string{
		"unsafe characters": "<script>",
		"too long":          strings.Repeat("a", 129),
	} {
		t.Run("replaces "+name, func(t *testing.T) {
			t.Parallel()
			seen, _ := serve(t, bad)
			assert.NotEqual(t, bad, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(requestid.Extractor()))

	log.InfoContext(context.Background(), "no id")
	assert.NotContains(t, buf.String(), "request_id")

	log.InfoContext(requestid.WithContext(context.Background(), "r-1"), "with id")
	require.Contains(t, buf.String(), `"request_id":"r-1"`)
}
