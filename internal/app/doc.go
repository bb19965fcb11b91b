// Package app assembles the contact form service from its configuration.
//
// Config is read with pkg/config from the environment (and an optional .env
// file). New loads the form schema, picks the submission transport named by
// FORM_TRANSPORT (stub, email, http or queue), connects to Redis when the
// queue transport is chosen and builds the live session manager and the web
// server. Run serves until the context is cancelled or SIGINT/SIGTERM
// arrives, then closes every live session.
package app
