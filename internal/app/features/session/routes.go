// internal/app/features/session/routes.go
package session

import "github.com/go-chi/chi/v5"

// MountRoutes registers the session endpoints on the supplied router.
// No auth-specific middleware is required because each handler checks
// the session via auth.CurrentUser.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/session", h.ServeSession)
	r.Get("/api/session/logins", h.ServeLogins)
}
