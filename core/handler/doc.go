// Package handler defines the shared contracts for request processing:
// a typed Context interface, handler and middleware function types, and the
// Response type that separates response generation from rendering.
//
// Handlers return a Response instead of writing directly, which lets
// middleware decorate the final write (adding rate-limit headers, capturing
// the status code for access logs) without buffering bodies:
//
//	func show(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"status": "ok"})
//	}
//
// Middleware composes over any context type implementing Context:
//
//	func Noop[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				return next(ctx)
//			}
//		}
//	}
package handler
