package router

import (
	"net/http"

	"github.com/dmitrymomot/gatekit/core/handler"
)

// Router registers handlers and middleware for a typed context.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, fn handler.HandlerFunc[C])
	Post(pattern string, fn handler.HandlerFunc[C])
	Put(pattern string, fn handler.HandlerFunc[C])
	Patch(pattern string, fn handler.HandlerFunc[C])
	Delete(pattern string, fn handler.HandlerFunc[C])
	Handle(pattern string, fn handler.HandlerFunc[C])

	Use(middlewares ...handler.Middleware[C])
	Group(fn func(r Router[C]))
}

// New creates a router for the default *Context type.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
