// Package httpserver runs the contact form's HTTP handler with graceful
// shutdown on context cancellation or SIGINT/SIGTERM, and provides a
// liveness/readiness handler.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil { ... }
package httpserver
