package formpost

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Signature headers set on every request when a signing secret is configured.
const (
	HeaderSignature = "X-Form-Signature"
	HeaderTimestamp = "X-Form-Timestamp"
	HeaderID        = "X-Form-ID"
)

// Signature authenticates one delivery. It is computed once per Post so
// retries carry the same id and the receiver can deduplicate them.
type Signature struct {
	Value     string
	Timestamp int64
	ID        string
}

func (s Signature) apply(h http.Header) {
	h.Set(HeaderSignature, s.Value)
	h.Set(HeaderTimestamp, strconv.FormatInt(s.Timestamp, 10))
	h.Set(HeaderID, s.ID)
}

// Sign computes hex(HMAC-SHA256(secret, "<unix ts>.<body>")).
func Sign(secret string, body []byte, at time.Time) (Signature, error) {
	if secret == "" {
		return Signature{}, fmt.Errorf("%w: secret is required", ErrInvalidSignature)
	}
	ts := at.Unix()
	return Signature{
		Value:     mac(secret, ts, body),
		Timestamp: ts,
		ID:        uuid.NewString(),
	}, nil
}

// Verify checks a signature from request headers. A maxAge of zero skips
// the freshness check.
func Verify(secret string, body []byte, h http.Header, now time.Time, maxAge time.Duration) error {
	if secret == "" {
		return fmt.Errorf("%w: secret is required", ErrInvalidSignature)
	}
	got := h.Get(HeaderSignature)
	if got == "" {
		return fmt.Errorf("%w: signature is missing", ErrInvalidSignature)
	}
	ts, err := strconv.ParseInt(h.Get(HeaderTimestamp), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
	}
	if maxAge > 0 && now.Sub(time.Unix(ts, 0)) > maxAge {
		return fmt.Errorf("%w: signature expired", ErrInvalidSignature)
	}
	if !hmac.Equal([]byte(got), []byte(mac(secret, ts, body))) {
		return fmt.Errorf("%w: mismatch", ErrInvalidSignature)
	}
	return nil
}

func mac(secret string, ts int64, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(h, "%d.", ts)
	_, _ = h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
