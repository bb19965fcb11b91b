package validator

import (
	"fmt"
	"regexp"
	"time"
)

var (
	defaultEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	defaultPhonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]{10,}$`)
)

// Config holds the patterns and thresholds used by every rule.
// It is a plain value: the With* helpers return modified copies and never
// touch the receiver, so a Config can be shared freely between goroutines.
type Config struct {
	EmailPattern     *regexp.Regexp
	PhonePattern     *regexp.Regexp
	MinNameLength    int
	MinSubjectLength int
	MinMessageLength int
	MaxMessageLength int
	DebounceDelay    time.Duration
	Messages         Messages
}

// DefaultConfig returns the thresholds shipped with the contact form.
func DefaultConfig() Config {
	return Config{
		EmailPattern:     defaultEmailPattern,
		PhonePattern:     defaultPhonePattern,
		MinNameLength:    2,
		MinSubjectLength: 3,
		MinMessageLength: 10,
		MaxMessageLength: 1000,
		DebounceDelay:    300 * time.Millisecond,
		Messages:         DefaultMessages(),
	}
}

func (c Config) WithMessageLength(min, max int) Config {
	c.MinMessageLength = min
	c.MaxMessageLength = max
	return c
}

func (c Config) WithNameLength(min int) Config {
	c.MinNameLength = min
	return c
}

func (c Config) WithSubjectLength(min int) Config {
	c.MinSubjectLength = min
	return c
}

func (c Config) WithDebounceDelay(d time.Duration) Config {
	c.DebounceDelay = d
	return c
}

func (c Config) WithMessages(m Messages) Config {
	c.Messages = m
	return c
}

// Check reports whether the config can be used to build rules.
func (c Config) Check() error {
	if c.EmailPattern == nil || c.PhonePattern == nil {
		return fmt.Errorf("%w: email and phone patterns are required", ErrInvalidConfig)
	}
	if c.MinMessageLength < 0 || c.MaxMessageLength < c.MinMessageLength {
		return fmt.Errorf("%w: message length bounds [%d, %d]", ErrInvalidConfig, c.MinMessageLength, c.MaxMessageLength)
	}
	if c.MinNameLength < 0 || c.MinSubjectLength < 0 {
		return fmt.Errorf("%w: negative minimum length", ErrInvalidConfig)
	}
	if c.DebounceDelay < 0 {
		return fmt.Errorf("%w: negative debounce delay", ErrInvalidConfig)
	}
	return nil
}
