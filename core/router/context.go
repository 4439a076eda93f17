package router

import (
	"net/http"
	"time"
)

// Context is the default request context. It delegates context.Context
// methods to the request's context and layers a request-scoped value store
// on top, so middleware can stash derived state without touching the
// request object.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	values map[any]any
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}

// Deadline delegates to the request context.
func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }

// Done delegates to the request context.
func (c *Context) Done() <-chan struct{} { return c.r.Context().Done() }

// Err delegates to the request context.
func (c *Context) Err() error { return c.r.Context().Err() }

// Value checks request-scoped values first, then the request context.
func (c *Context) Value(key any) any {
	if val, ok := c.values[key]; ok {
		return val
	}
	return c.r.Context().Value(key)
}

// Request returns the underlying *http.Request.
func (c *Context) Request() *http.Request { return c.r }

// ResponseWriter returns the underlying http.ResponseWriter.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns the value of the named URL parameter, or "".
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// SetValue stores a request-scoped value visible through Value.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}
