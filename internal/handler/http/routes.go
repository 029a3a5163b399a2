package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Everything but /metrics and /version lives under
// /api/v1.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withLocale)

	router.Handle("/metrics", h.metricsHandler)
	router.Get("/version", h.getServerVersion)

	router.Route("/api/v1", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Get("/health", h.health)

			r.Get("/pages", h.pagesIndex)
			r.Get("/pages/home", h.homePage)
			r.Get("/pages/navigation", h.navigation)
			r.Get("/pages/{slug}", h.pageBySlug)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.withCrossOriginProtection)

			r.With(h.withLoginRateLimit).Post("/auth/login", h.login)
			r.Post("/auth/register-specialist", h.registerSpecialist)
			r.Post("/auth/check-id", h.checkID)
		})

		// authorized routes
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/auth/logout", h.logout)
			r.Get("/auth/me", h.me)

			r.Route("/specialist", func(r chi.Router) {
				r.Use(h.requireSpecialist)

				r.Get("/profile", h.getProfile)
				r.Put("/profile", h.updateProfile)
				r.Post("/change-password", h.changePassword)
				r.Get("/activity", h.activity)
				r.Get("/settings", h.getSettings)
				r.Put("/settings", h.updateSettings)

				r.Get("/content", h.contentIndex)
				r.Get("/content/{type}", h.contentByType)

				r.Get("/files", h.filesIndex)
				r.Get("/files/stats", h.fileStats)
				r.Get("/files/by-type/{contentType}", h.filesByType)
				r.Get("/files/{file}", h.fileInfo)
				r.Get("/files/{file}/download", h.downloadFile)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Route("/identification-numbers", func(r chi.Router) {
					r.Get("/", h.listIdentificationNumbers)
					r.Post("/", h.createIdentificationNumber)
					r.Get("/stats", h.identificationNumberStats)
					r.Post("/batch", h.createIdentificationNumberBatch)
					r.Get("/{id}", h.getIdentificationNumber)
					r.Put("/{id}", h.updateIdentificationNumber)
					r.Delete("/{id}", h.deleteIdentificationNumber)
					r.Post("/{id}/release", h.releaseIdentificationNumber)
					r.Post("/{id}/toggle-status", h.toggleIdentificationNumber)
				})

				r.Post("/specialist-content", h.createContent)
				r.Post("/specialist-content/{id}/files", h.uploadFile)
				r.Delete("/specialist-files/{id}", h.deleteFile)

				r.Post("/pages", h.createPage)
				r.Put("/pages/{id}", h.updatePage)
				r.Delete("/pages/{id}", h.deletePage)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
