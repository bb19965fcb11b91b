package app

import (
	"time"

	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/pkg/formpost"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/redis"
)

// Transport names accepted in Config.Transport.
const (
	TransportStub  = "stub"
	TransportEmail = "email"
	TransportHTTP  = "http"
	TransportQueue = "queue"
)

type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_SERVICE" envDefault:"contactform"`
	// LogLevel overrides the environment's default level when set.
	LogLevel string `env:"LOG_LEVEL"`
	Title    string `env:"APP_TITLE" envDefault:"Contact"`

	// SchemaPath points to a YAML form schema; empty uses the built-in one.
	SchemaPath    string        `env:"FORM_SCHEMA"`
	Transport     string        `env:"FORM_TRANSPORT" envDefault:"stub"`
	StubDelay     time.Duration `env:"FORM_STUB_DELAY" envDefault:"2s"`
	QueueKey      string        `env:"FORM_QUEUE_KEY" envDefault:"contactform:submissions"`
	DebounceDelay time.Duration `env:"FORM_DEBOUNCE_DELAY" envDefault:"300ms"`
	DismissAfter  time.Duration `env:"FORM_DISMISS_AFTER" envDefault:"5s"`
	FadeDuration  time.Duration `env:"FORM_FADE_DURATION" envDefault:"300ms"`

	MinNameLength    int `env:"FORM_MIN_NAME_LENGTH" envDefault:"2"`
	MinSubjectLength int `env:"FORM_MIN_SUBJECT_LENGTH" envDefault:"3"`
	MinMessageLength int `env:"FORM_MIN_MESSAGE_LENGTH" envDefault:"10"`
	MaxMessageLength int `env:"FORM_MAX_MESSAGE_LENGTH" envDefault:"1000"`

	SessionCapacity int           `env:"SESSION_CAPACITY" envDefault:"1000"`
	SessionIdleTTL  time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// ProxyHeaders are trusted for the client address, in order. Only list
	// headers a proxy in front of the server overwrites; empty means the
	// connection address.
	ProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`
	// SubmitLimit throttles submissions per client; RATE_LIMIT_CAPACITY=0
	// disables it.
	SubmitLimit ratelimiter.Config

	HTTP     httpserver.Config
	Email    email.Config
	FormPost formpost.Config
	Redis    redis.Config
}
