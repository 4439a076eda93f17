package response

import "net/http"

// HTTPError represents a structured error response that implements the
// error interface. The Code is machine-readable and stable; the Message is
// for humans.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code, satisfying the router's
// statusCode interface.
func (e HTTPError) StatusCode() int { return e.Status }

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with an error cause in the details.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Predefined HTTP errors for the terminal outcomes of the security gates.
var (
	ErrBadRequest = HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: http.StatusText(http.StatusBadRequest),
	}

	// ErrAuthenticationRequired covers missing, expired, and hijack-destroyed
	// sessions alike; callers learn nothing about which from the response.
	ErrAuthenticationRequired = HTTPError{
		Status:  http.StatusUnauthorized,
		Code:    "AUTHENTICATION_REQUIRED",
		Message: "Authentication required",
	}

	ErrForbidden = HTTPError{
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: http.StatusText(http.StatusForbidden),
	}

	ErrCSRFInvalid = HTTPError{
		Status:  http.StatusForbidden,
		Code:    "CSRF_INVALID",
		Message: "CSRF token missing or invalid",
	}

	ErrNotFound = HTTPError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: http.StatusText(http.StatusNotFound),
	}

	ErrMethodNotAllowed = HTTPError{
		Status:  http.StatusMethodNotAllowed,
		Code:    "METHOD_NOT_ALLOWED",
		Message: http.StatusText(http.StatusMethodNotAllowed),
	}

	ErrRateLimitExceeded = HTTPError{
		Status:  http.StatusTooManyRequests,
		Code:    "RATE_LIMIT_EXCEEDED",
		Message: "Rate limit exceeded",
	}

	ErrInternalServerError = HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: http.StatusText(http.StatusInternalServerError),
	}
)

// httpErrorsByStatus maps status codes to base errors for conversion of
// arbitrary errors in the error handler.
var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrAuthenticationRequired,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusTooManyRequests:     ErrRateLimitExceeded,
	http.StatusInternalServerError: ErrInternalServerError,
}
