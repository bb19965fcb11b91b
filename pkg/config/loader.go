package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// Option adjusts how Load reads the environment.
type Option func(*options)

// WithEnvFiles loads the given dotenv files before parsing. Missing files
// are skipped; variables already set in the process win. The default is
// ".env".
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithPrefix requires every variable name to start with prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from vars instead of the process environment and
// skips dotenv files. Tests use it to stay hermetic.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
		o.files = nil
	}
}

// Load fills v from environment variables according to its `env` and
// `envDefault` tags.
//
//	type Config struct {
//		Transport string        `env:"TRANSPORT" envDefault:"stub"`
//		StubDelay time.Duration `env:"STUB_DELAY" envDefault:"2s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{files: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	for _, f := range o.files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Join(ErrParsingConfig, fmt.Errorf("load %s: %w", f, err))
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
