package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver finds the originating client address of a request.
type Resolver struct {
	headers []string
}

// New returns a Resolver trusting headers in the given order. With no
// headers only RemoteAddr is used, which is what a server exposed directly
// to the internet wants.
func New(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// Default trusts DefaultHeaders.
func Default() *Resolver {
	return New(DefaultHeaders...)
}

// Resolve returns the normalised client IP, or "" if none could be parsed.
// For X-Forwarded-For the first valid entry wins.
func (res *Resolver) Resolve(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parse(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}
