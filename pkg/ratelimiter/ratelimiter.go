package ratelimiter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/benbjohnson/clock"
)

// Bucket is a token bucket limiter over a Store.
type Bucket struct {
	store Store
	cfg   Config
	clock clock.Clock
}

// NewBucket validates cfg. The clock is only used to compute RetryAfter
// and should be the one driving store.
func NewBucket(store Store, cfg Config, c clock.Clock) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = clock.New()
	}
	return &Bucket{store: store, cfg: cfg, clock: c}, nil
}

func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}

	ok, remaining, resetAt, err := b.store.Take(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Allowed:   ok,
		Limit:     b.cfg.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
	if !ok {
		res.RetryAfter = max(resetAt.Sub(b.clock.Now()), 0)
	}
	return res, nil
}

func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// SetHeaders writes the X-RateLimit-* headers, plus Retry-After (rounded up
// to whole seconds) when res was refused.
func SetHeaders(w http.ResponseWriter, res Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
	if !res.Allowed {
		secs := int64((res.RetryAfter + 999_999_999) / 1_000_000_000)
		h.Set("Retry-After", strconv.FormatInt(max(secs, 1), 10))
	}
}
