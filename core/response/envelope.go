package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrymomot/gatekit/core/handler"
)

// Envelope is the uniform JSON body for all API responses.
type Envelope struct {
	Status    string `json:"status"` // "success" or "error"
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // ISO-8601
	Data      any    `json:"data,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// JSON creates a success envelope with 200 OK status.
func JSON(data any) handler.Response {
	return JSONWithStatus(data, http.StatusOK)
}

// JSONWithStatus creates a success envelope with a custom status code.
func JSONWithStatus(data any, status int) handler.Response {
	return envelope(Envelope{
		Status: statusSuccess,
		Data:   data,
	}, status)
}

// JSONMessage creates a success envelope with a message and no data.
func JSONMessage(message string) handler.Response {
	return envelope(Envelope{
		Status:  statusSuccess,
		Message: message,
	}, http.StatusOK)
}

// JSONError creates an error envelope carrying the HTTPError's code and
// details in the data field.
func JSONError(httpErr HTTPError) handler.Response {
	return envelope(Envelope{
		Status:  statusError,
		Message: httpErr.Message,
		Data:    errorBody(httpErr),
	}, httpErr.Status)
}

type errorData struct {
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

func errorBody(httpErr HTTPError) errorData {
	return errorData{Code: httpErr.Code, Details: httpErr.Details}
}

func envelope(env Envelope, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		env.Timestamp = time.Now().UTC().Format(time.RFC3339)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		return json.NewEncoder(w).Encode(env)
	}
}
