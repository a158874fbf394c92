package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts every tracker operation under /api.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.register)
		api.Post("/auth/login", h.login)

		api.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)

			protected.Post("/auth/logout", h.logout)
			protected.Get("/me", h.me)
			protected.Post("/reload", h.reload)

			protected.Get("/files", h.listFiles)
			protected.Get("/files/counts", h.statusCounts)
			protected.Post("/files", h.submitFile)
			protected.Put("/files/{id}", h.upsertFile)
			protected.Delete("/files/{id}", h.deleteFile)
			protected.Delete("/files", h.deleteFileByName)
			protected.Get("/files/{id}/artifact", h.downloadArtifact)

			protected.Group(func(admin chi.Router) {
				admin.Use(h.adminOnly)

				admin.Get("/users", h.listUsers)
				admin.Patch("/files/{id}/status", h.setStatus)
				admin.Post("/files/{id}/notify", h.notify)
				admin.Post("/users/{email}/artifacts", h.attachArtifact)
				admin.Post("/uploads", h.presignUpload)
			})
		})
	})

	return r
}
