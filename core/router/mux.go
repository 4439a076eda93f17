package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrymomot/gatekit/core/handler"
)

// route is one registered pattern. Segments starting with '{' capture
// the corresponding path segment as a named parameter.
type route[C handler.Context] struct {
	method   string // empty matches all methods
	segments []string
	fn       handler.HandlerFunc[C]
}

// mux is the private Router implementation.
type mux[C handler.Context] struct {
	routes       []route[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	routed       bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	fn, params, methodMismatch := m.match(r.Method, path)
	ctx := m.newContext(ww, r, params)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	if fn == nil {
		if methodMismatch {
			m.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	resp := fn(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, r); err != nil {
		if ww.Written() {
			m.logger.Error("response error after headers written", "error", err, "path", r.URL.Path)
			return
		}
		m.errorHandler(ctx, err)
	}
}

// match finds the first route whose pattern and method match the request.
// Returns methodMismatch=true when a pattern matched but the method did not,
// so the caller can distinguish 404 from 405.
func (m *mux[C]) match(method, path string) (handler.HandlerFunc[C], map[string]string, bool) {
	segments := splitPath(path)
	methodMismatch := false

	for _, rt := range m.routes {
		params, ok := matchSegments(rt.segments, segments)
		if !ok {
			continue
		}
		if rt.method != "" && rt.method != method {
			methodMismatch = true
			continue
		}
		return rt.fn, params, false
	}

	return nil, nil, methodMismatch
}

func (m *mux[C]) Get(pattern string, fn handler.HandlerFunc[C])    { m.handle(http.MethodGet, pattern, fn) }
func (m *mux[C]) Post(pattern string, fn handler.HandlerFunc[C])   { m.handle(http.MethodPost, pattern, fn) }
func (m *mux[C]) Put(pattern string, fn handler.HandlerFunc[C])    { m.handle(http.MethodPut, pattern, fn) }
func (m *mux[C]) Patch(pattern string, fn handler.HandlerFunc[C])  { m.handle(http.MethodPatch, pattern, fn) }
func (m *mux[C]) Delete(pattern string, fn handler.HandlerFunc[C]) { m.handle(http.MethodDelete, pattern, fn) }

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, fn handler.HandlerFunc[C]) { m.handle("", pattern, fn) }

// Use appends middleware to the router. Must be called before routes are
// registered so the chain order is unambiguous.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.routed {
		panic("gatekit: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// Group registers routes with middleware scoped to the group. Group
// middleware is baked into each handler at registration time.
func (m *mux[C]) Group(fn func(r Router[C])) {
	if fn == nil {
		return
	}
	fn(&group[C]{parent: m})
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(ErrInvalidPattern)
	}
	if fn == nil {
		panic(ErrNilHandler)
	}

	m.routed = true
	m.routes = append(m.routes, route[C]{
		method:   method,
		segments: splitPath(pattern),
		fn:       fn,
	})
}

// group is an inline router that bakes its own middleware into registered
// handlers while sharing the parent's route table.
type group[C handler.Context] struct {
	parent      *mux[C]
	middlewares []handler.Middleware[C]
}

func (g *group[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) { g.parent.ServeHTTP(w, r) }

func (g *group[C]) Get(pattern string, fn handler.HandlerFunc[C])    { g.handle(http.MethodGet, pattern, fn) }
func (g *group[C]) Post(pattern string, fn handler.HandlerFunc[C])   { g.handle(http.MethodPost, pattern, fn) }
func (g *group[C]) Put(pattern string, fn handler.HandlerFunc[C])    { g.handle(http.MethodPut, pattern, fn) }
func (g *group[C]) Patch(pattern string, fn handler.HandlerFunc[C])  { g.handle(http.MethodPatch, pattern, fn) }
func (g *group[C]) Delete(pattern string, fn handler.HandlerFunc[C]) { g.handle(http.MethodDelete, pattern, fn) }
func (g *group[C]) Handle(pattern string, fn handler.HandlerFunc[C]) { g.handle("", pattern, fn) }

func (g *group[C]) Use(middlewares ...handler.Middleware[C]) {
	g.middlewares = append(g.middlewares, middlewares...)
}

func (g *group[C]) Group(fn func(r Router[C])) {
	if fn == nil {
		return
	}
	fn(&group[C]{parent: g.parent, middlewares: g.middlewares})
}

func (g *group[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(g.middlewares) > 0 {
		fn = chain(g.middlewares, fn)
	}
	g.parent.handle(method, pattern, fn)
}

// chain builds a single handler from a middleware stack and endpoint.
// Middleware is applied in reverse so the first registered runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range pattern {
		if len(seg) > 1 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:len(seg)-1]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}

	return params, true
}
