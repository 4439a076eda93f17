package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/gatekit/core/handler"
)

// statusCode is implemented by errors carrying their own HTTP status.
type statusCode interface {
	StatusCode() int
}

// convertToHTTPError maps any error onto the HTTPError taxonomy. Errors
// without a status become 500s with the cause attached.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}

	return baseErr.WithError(err)
}

// JSONErrorHandler renders errors as the standard JSON envelope. Install it
// as the router's error handler so every terminal rejection shares one shape.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONError(httpErr))
}
