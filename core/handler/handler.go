package handler

import "net/http"

// Response renders an HTTP response. Returning an error delegates to the
// router's error handler instead of writing a response body.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc processes a request with a typed context and returns a Response.
type HandlerFunc[C Context] func(ctx C) Response

// Middleware wraps a handler with additional behavior.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// ErrorHandler converts an error into a terminal response for the client.
type ErrorHandler[C Context] func(ctx C, err error)
