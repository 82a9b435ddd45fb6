// internal/app/features/resources/routes.go
package resources

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the resource catalog, mounted under
// /api/resources. Browsing is public; requireAuth guards creation.
func Routes(h *Handler, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/tags", h.ServeTags)
	r.Get("/search", h.ServeSearch)
	r.Get("/{id}", h.ServeGet)

	// Counters are public: anonymous visitors view and download too.
	r.Post("/{id}/views", h.ServeCountView)
	r.Post("/{id}/downloads", h.ServeCountDownload)

	r.With(requireAuth).Post("/", h.ServeCreate)

	return r
}
