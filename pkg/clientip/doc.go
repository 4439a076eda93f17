// Package clientip extracts real client IP addresses from HTTP requests.
//
// It consults proxy headers in priority order (CF-Connecting-IP,
// DO-Connecting-IP, X-Forwarded-For, X-Real-IP), validating every candidate
// as a well-formed, globally routable address before trusting it, and falls
// back to the direct connection address. Private and loopback values in
// forwarded headers are rejected so a hostile client cannot smuggle an
// internal address into rate-limit keys or audit logs.
//
//	ip := clientip.GetIP(r)
//
// In a hostile multi-proxy environment, narrow the header list to the one
// set by your own trusted reverse proxy:
//
//	ip := clientip.GetIPFromHeaders(r, []string{"X-Real-IP"})
package clientip
