// Package router provides a small generic HTTP router built on the
// handler package's typed-context contracts. Patterns are matched segment
// by segment; segments wrapped in braces capture named parameters.
//
//	r := router.New[*router.Context]()
//	r.Use(middleware.RequestID[*router.Context]())
//
//	r.Get("/articles/{id}", func(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"id": ctx.Param("id")})
//	})
//
//	http.ListenAndServe(":8080", r)
//
// Middleware registered with Use applies to every route and must be
// registered before the routes. Group scopes additional middleware to a
// subset of routes:
//
//	r.Group(func(g router.Router[*router.Context]) {
//		g.Use(middleware.CSRF[*router.Context](csrfCfg))
//		g.Post("/articles", createArticle)
//	})
//
// Panics in handlers are recovered and routed to the error handler with the
// stack attached; see PanicError.
package router
