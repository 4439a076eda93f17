package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/gatekit/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("not found")
	ErrNilResponse      = errors.New("nil response")
	ErrNilHandler       = errors.New("nil handler")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
)

// statusCode lets errors carry their own HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler writes a plain-text error with the status the error
// carries, or 500 when it carries none. Prevents double writes.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	} else if errors.Is(err, ErrNotFound) {
		status = http.StatusNotFound
	} else if errors.Is(err, ErrMethodNotAllowed) {
		status = http.StatusMethodNotAllowed
	}

	http.Error(w, err.Error(), status)
}

// PanicError exposes recovered panics to custom error handlers together with
// the stack captured at the panic point.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

// Unwrap allows errors.Is/As to reach a panicked error value.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
