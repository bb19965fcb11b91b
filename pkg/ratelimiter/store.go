package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. Take removes n tokens when at least n are
// available and reports the tokens left and the time of the next refill.
// A refused take leaves the bucket untouched.
type Store interface {
	Take(ctx context.Context, key string, n int, cfg Config) (ok bool, remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
