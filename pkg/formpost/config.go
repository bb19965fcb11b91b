package formpost

import "time"

// Encoding selects how values are written to the request body.
type Encoding string

const (
	// EncodingForm posts application/x-www-form-urlencoded, the way
	// Netlify-style form backends expect.
	EncodingForm Encoding = "form"
	// EncodingJSON posts a JSON object and asks for a JSON reply, the way
	// Formspree-style endpoints work.
	EncodingJSON Encoding = "json"
)

type Config struct {
	URL        string        `env:"FORMPOST_URL"`
	Encoding   Encoding      `env:"FORMPOST_ENCODING" envDefault:"json"`
	Timeout    time.Duration `env:"FORMPOST_TIMEOUT" envDefault:"10s"`
	MaxRetries int           `env:"FORMPOST_MAX_RETRIES" envDefault:"2"`
	// Secret enables request signing when set.
	Secret string `env:"FORMPOST_SECRET"`
	// Headers are sent with every request, e.g. "X-Api-Key:abc,X-Site:main".
	Headers map[string]string `env:"FORMPOST_HEADERS" envKeyValSeparator:":"`
}
