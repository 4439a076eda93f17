package fingerprint

import "errors"

type options struct {
	// includeIP folds the client IP into the fingerprint. Changes with
	// mobile networks and VPNs, so off by default.
	includeIP bool

	// includeAcceptHeaders folds Accept-Language/Accept-Encoding in.
	includeAcceptHeaders bool
}

// Option is a functional option for fingerprint generation.
type Option func(*options)

// WithIP includes the client IP address in the fingerprint. Only use where
// forced re-authentication on network changes is acceptable.
func WithIP() Option {
	return func(o *options) { o.includeIP = true }
}

// WithoutAcceptHeaders restricts the fingerprint to the User-Agent alone.
func WithoutAcceptHeaders() Option {
	return func(o *options) { o.includeAcceptHeaders = false }
}

func applyOptions(opts ...Option) *options {
	o := &options{includeAcceptHeaders: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var (
	// ErrInvalidFingerprint indicates the stored fingerprint has an invalid format.
	ErrInvalidFingerprint = errors.New("invalid fingerprint format")

	// ErrMismatch indicates the fingerprint does not match the current request.
	// A mismatch on a live session is treated as a hijack signal.
	ErrMismatch = errors.New("fingerprint mismatch")
)
