package cookie

import "errors"

var (
	// ErrNoSecret indicates no signing secret was provided.
	ErrNoSecret = errors.New("no secret provided for cookie manager")

	// ErrSecretTooShort indicates a secret below the 32-character minimum.
	ErrSecretTooShort = errors.New("cookie secret must be at least 32 characters long")

	// ErrInvalidSignature indicates signature verification failed, suggesting
	// tampering or corruption.
	ErrInvalidSignature = errors.New("cookie signature verification failed")

	// ErrCookieNotFound indicates the requested cookie is absent from the request.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidFormat indicates the cookie value has an unexpected shape.
	ErrInvalidFormat = errors.New("invalid cookie format")

	// ErrCookieTooLarge indicates the serialized cookie exceeds the size limit.
	ErrCookieTooLarge = errors.New("cookie exceeds maximum size")
)
