package sessiontransport

import "errors"

var (
	// ErrNoToken is returned when no session credential is present in the request.
	ErrNoToken = errors.New("sessiontransport: no token")

	// ErrInvalidToken is returned when the credential format or signature is invalid.
	ErrInvalidToken = errors.New("sessiontransport: invalid token")

	// ErrTransportFailed is returned when the transport could not complete
	// an operation for reasons other than a bad credential.
	ErrTransportFailed = errors.New("sessiontransport: transport failed")
)
