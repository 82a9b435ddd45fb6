// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// MountRoutes registers POST /api/logout on the supplied router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/logout", h.ServeLogout)
}
