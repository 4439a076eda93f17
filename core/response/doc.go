// Package response builds HTTP responses and defines the error taxonomy for
// the security layer.
//
// Every JSON body uses one envelope:
//
//	{"status": "success"|"error", "message": "...", "timestamp": "...", "data": ...}
//
// Terminal security rejections map to HTTPError values with stable
// machine-readable codes: AUTHENTICATION_REQUIRED (401), CSRF_INVALID (403),
// RATE_LIMIT_EXCEEDED (429). Handlers return them via Error:
//
//	return response.Error(response.ErrCSRFInvalid)
//
// and the router's JSONErrorHandler renders them into the envelope.
package response
