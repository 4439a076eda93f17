package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUserStoreFailed is returned when the user store could not be queried.
	ErrUserStoreFailed = errors.New("auth: user store failed")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's
	// 72-byte input limit.
	ErrPasswordTooLong = errors.New("auth: password exceeds 72 bytes")
)
