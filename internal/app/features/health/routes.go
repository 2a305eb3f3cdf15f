// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Routes mounts the health endpoint on the given router.
func Routes(r chi.Router, h *Handler) {
	r.Get("/health", h.Serve)
}
