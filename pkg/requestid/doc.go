// Package requestid tags every HTTP request with a correlation id.
//
// Middleware keeps a client-supplied X-Request-ID when it is short and made
// of letters, digits, '-' and '_', and otherwise generates a UUID. The id is
// stored in the request context and echoed in the response header. Extractor
// plugs it into pkg/logger so every record logged with the request context
// carries request_id.
package requestid
