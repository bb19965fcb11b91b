// Package logger builds *slog.Logger values for the contact form service.
//
// New takes functional options for format, level, output and static
// attributes. WithEnvironment picks the development or production preset.
// ContextExtractor callbacks pull request-scoped values (request id, live
// session id) out of the context on every record, so handlers only need to
// call the *Context logging methods:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "contactform"),
//	    logger.WithContextExtractors(requestid.Extractor(), live.SessionExtractor()),
//	)
//	log.InfoContext(ctx, "form submitted", logger.FormID("contact"))
//
// attr.go holds constructors that keep attribute keys consistent: Error,
// RequestID, SessionID, FormID, Field, Transport, State and friends.
package logger
