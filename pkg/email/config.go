package email

// Config holds mail delivery settings. Without Postmark tokens the service
// falls back to the dev sender, which writes messages to DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@localhost.dev"`
	// NotifyEmail receives contact form submissions.
	NotifyEmail string `env:"NOTIFY_EMAIL" envDefault:"inbox@localhost.dev"`
	DevDir      string `env:"EMAIL_DEV_DIR" envDefault:".emails"`
}

// UsePostmark reports whether both Postmark tokens are configured.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
