package ratelimiter

import "time"

// Config is a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

// Disabled reports whether cfg turns limiting off. A zero capacity is the
// documented way to do that.
func (c Config) Disabled() bool {
	return c.Capacity == 0
}

// Result of a single check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is zero when Allowed.
	RetryAfter time.Duration
	ResetAt    time.Time
}
