package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// defaultHeaders is the prioritized list of proxy headers consulted before
// falling back to the connection's remote address. The most reliable
// CDN-set headers come first.
var defaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP resolves the client IP address for the request. Each candidate
// header value must parse as a well-formed, globally routable unicast
// address before it is trusted; private, loopback and unspecified addresses
// from proxy headers are skipped so clients cannot spoof internal
// identifiers. When no header yields a valid address, the connection's
// remote address is returned.
//
// Deployments behind a known reverse proxy should narrow the header list
// with GetIPFromHeaders to only the header that proxy sets.
func GetIP(r *http.Request) string {
	return GetIPFromHeaders(r, defaultHeaders)
}

// GetIPFromHeaders resolves the client IP consulting only the given headers,
// in order, before falling back to the remote address.
func GetIPFromHeaders(r *http.Request, headers []string) string {
	for _, header := range headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may hold a chain "client, proxy1, proxy2";
		// the leftmost entry is the original client.
		for _, candidate := range strings.Split(value, ",") {
			if ip, ok := parsePublic(strings.TrimSpace(candidate)); ok {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip, err := netip.ParseAddr(host); err == nil {
		return ip.String()
	}
	return host
}

// parsePublic validates and normalizes a proxy-supplied address. Only
// global unicast addresses are accepted from headers.
func parsePublic(s string) (string, bool) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return "", false
	}

	if ip.IsUnspecified() || ip.IsLoopback() || ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast() {
		return "", false
	}

	return ip.Unmap().String(), true
}
