package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/config"
)

type appConfig struct {
	Transport string        `env:"TRANSPORT" envDefault:"stub"`
	Delay     time.Duration `env:"STUB_DELAY" envDefault:"2s"`
	Inner     struct {
		Capacity int `env:"SESSION_CAPACITY" envDefault:"1000"`
	}
}

type requiredConfig struct {
	Secret string `env:"SECRET,required"`
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()
	var cfg appConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
	assert.Equal(t, "stub", cfg.Transport)
	assert.Equal(t, 2*time.Second, cfg.Delay)
	assert.Equal(t, 1000, cfg.Inner.Capacity)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()
	var cfg appConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{
		"CF_TRANSPORT":        "email",
		"CF_STUB_DELAY":       "150ms",
		"CF_SESSION_CAPACITY": "3",
	}), config.WithPrefix("CF_")))
	assert.Equal(t, "email", cfg.Transport)
	assert.Equal(t, 150*time.Millisecond, cfg.Delay)
	assert.Equal(t, 3, cfg.Inner.Capacity)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	var missing requiredConfig
	assert.ErrorIs(t, config.Load(&missing, config.WithEnvironment(map[string]string{})), config.ErrParsingConfig)

	var bad appConfig
	err := config.Load(&bad, config.WithEnvironment(map[string]string{"STUB_DELAY": "soon"}))
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)
	assert.Panics(t, func() {
		config.MustLoad(&missing, config.WithEnvironment(map[string]string{}))
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFTEST_FILE_SECRET=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CFTEST_FILE_SECRET") })

	var cfg struct {
		Secret string `env:"CFTEST_FILE_SECRET,required"`
	}
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path, filepath.Join(t.TempDir(), "missing.env"))))
	assert.Equal(t, "from-file", cfg.Secret)
}
