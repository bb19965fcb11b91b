// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// A Resolver checks the trusted headers in order (CF-Connecting-IP,
// X-Forwarded-For, X-Real-IP by default) and falls back to RemoteAddr.
// Only headers set by a proxy you control should be trusted; a server
// facing clients directly should use New() with no headers.
//
//	ips := clientip.Default()
//	r.Use(ips.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
