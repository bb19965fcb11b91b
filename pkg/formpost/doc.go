// Package formpost delivers contact form values to a hosted form backend
// such as Formspree or Netlify Forms.
//
// A Client posts either a JSON object or an urlencoded body, retries
// network errors, 5xx replies and 408/425/429 with backoff, and gives up at
// once on other 4xx replies. Error replies in Formspree's JSON shape are
// turned into readable error messages.
//
// Self-hosted receivers can require authenticity: with FORMPOST_SECRET set,
// every request carries X-Form-Signature (hex HMAC-SHA256 over
// "<timestamp>.<body>"), X-Form-Timestamp and X-Form-ID. Retries of one Post
// reuse the same id. Verify checks the headers on the receiving side.
//
//	c, err := formpost.New("https://formspree.io/f/abcd", formpost.FromConfig(cfg)...)
//	if err != nil { ... }
//	err = c.Post(ctx, map[string]string{"email": "ada@example.com"})
package formpost
