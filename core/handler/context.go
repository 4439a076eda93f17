package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// It extends context.Context with HTTP-specific accessors and a mutable
// request-scoped value store used by middleware to pass derived state
// (client IP, fingerprint, session, correlation id) down the chain.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
