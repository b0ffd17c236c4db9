package http

import (
	"github.com/MKhiriev/go-photo-share/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(h.withTimeout)

		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.signUp)
			r.Post("/login", h.login)
			r.Get("/refresh_token", h.refreshToken)
			r.Get("/confirmed_email/{token}", h.confirmEmail)
			r.Post("/request_email", h.requestEmail)
			r.Post("/forgot_password", h.forgotPassword)
			r.Post("/reset_password", h.resetPassword)

			r.With(h.auth).Post("/logout", h.logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/me", h.me)
			r.Patch("/me", h.editProfile)
			r.With(h.requireRole(service.AllRoles)).Get("/", h.listUsers)

			r.Group(func(r chi.Router) {
				r.Use(h.requireRole(service.AdminOnly))
				r.Patch("/ban", h.ban)
				r.Patch("/activate", h.activate)
				r.Patch("/assign_role/{role}", h.assignRole)
			})

			r.Get("/{username}", h.profile)
		})
	})

	return router
}
