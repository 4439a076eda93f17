package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/gatekit/pkg/clientip"
)

const (
	fingerprintVersion = "v1:"
	// 16 bytes of the SHA-256 digest is plenty for identifying a client
	// while halving session storage per fingerprint.
	fingerprintHashLen  = 16
	fingerprintTotalLen = 35 // len("v1:") + hex encoding of 16 bytes
)

// Generate derives a client fingerprint from the request, primarily the
// User-Agent string. Returns a version-prefixed string "v1:<hash>".
//
// By default the IP address is excluded, since mobile networks and VPNs
// rotate addresses and would invalidate sessions spuriously:
//
//	fp := fingerprint.Generate(r)           // User-Agent + Accept headers
//	fp := fingerprint.Generate(r, WithIP()) // high-security variant
func Generate(r *http.Request, opts ...Option) string {
	o := applyOptions(opts...)

	components := []string{r.UserAgent()}

	if o.includeAcceptHeaders {
		components = append(components,
			r.Header.Get("Accept-Language"),
			r.Header.Get("Accept-Encoding"),
		)
	}

	if o.includeIP {
		components = append(components, clientip.GetIP(r))
	}

	filtered := make([]string, 0, len(components))
	for _, comp := range components {
		if comp != "" {
			filtered = append(filtered, comp)
		}
	}

	// Pipe delimiter prevents ["ab","c"] and ["a","bc"] from colliding.
	combined := strings.Join(filtered, "|")
	hash := sha256.Sum256([]byte(combined))

	return fingerprintVersion + hex.EncodeToString(hash[:fingerprintHashLen])
}

// Validate compares the current request's fingerprint with a stored one.
// Returns nil on match, ErrMismatch on disagreement, and
// ErrInvalidFingerprint when the stored value is malformed.
//
// Use the same options that produced the stored fingerprint.
func Validate(r *http.Request, stored string, opts ...Option) error {
	if !strings.HasPrefix(stored, fingerprintVersion) || len(stored) != fingerprintTotalLen {
		return ErrInvalidFingerprint
	}

	if Generate(r, opts...) == stored {
		return nil
	}

	return ErrMismatch
}
