package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, middleware.RealIP)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)

	// routes without authorization, limited per client address
	router.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// sync routes, limited per account
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.rateLimit)
		r.With(h.pushHashing).Post("/api/sync/push", h.push)
		r.Post("/api/sync/pull", h.pull)
		r.Post("/api/sync/stats", h.stats)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
