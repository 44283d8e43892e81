package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

var dnsTimeout = 3 * time.Second

// ClassifyDNS gives a rough DNS diagnosis for a host whose connect phase
// failed: "RESOLVES" | "NXDOMAIN" | "SERVFAIL_or_TIMEOUT" | "RESOLVER_ERROR"
// | "INVALID_NAME". Log detail only; it never feeds the counters.
func ClassifyDNS(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return "INVALID_NAME"
	}
	if ip := net.ParseIP(host); ip != nil {
		return "RESOLVES"
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{} // OS resolver

	ips, err := r.LookupIP(ctx, "ip", host)
	if err == nil && len(ips) > 0 {
		return "RESOLVES"
	}
	var de *net.DNSError
	if errors.As(err, &de) {
		if de.IsNotFound {
			return "NXDOMAIN"
		}
		if de.IsTemporary || de.Timeout() {
			return "SERVFAIL_or_TIMEOUT"
		}
	}
	return "RESOLVER_ERROR"
}
