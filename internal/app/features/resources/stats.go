// internal/app/features/resources/stats.go
package resources

import (
	"context"
	"errors"
	"net/http"

	resourcestore "github.com/edunaija/edunaija/internal/app/store/resources"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"github.com/edunaija/edunaija/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeCountView handles POST /api/resources/{id}/views.
func (h *Handler) ServeCountView(w http.ResponseWriter, r *http.Request) {
	h.incrementStat(w, r, models.StatViews)
}

// ServeCountDownload handles POST /api/resources/{id}/downloads.
func (h *Handler) ServeCountDownload(w http.ResponseWriter, r *http.Request) {
	h.incrementStat(w, r, models.StatDownloads)
}

// incrementStat bumps one counter and replies 204. Counters are advisory,
// so clients fire these without waiting on the result.
func (h *Handler) incrementStat(w http.ResponseWriter, r *http.Request, stat string) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Resource not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Store.IncrementStat(ctx, id, stat)
	if errors.Is(err, resourcestore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "Resource not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "increment stat failed", err, "Unable to update counter.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
