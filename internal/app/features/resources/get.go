// internal/app/features/resources/get.go
package resources

import (
	"context"
	"errors"
	"net/http"

	resourcestore "github.com/edunaija/edunaija/internal/app/store/resources"
	"github.com/edunaija/edunaija/internal/app/system/jsonreq"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeGet handles GET /api/resources/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Resource not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, resourcestore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "Resource not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch resource failed", err, "Unable to load resource.")
		return
	}

	jsonreq.Write(w, http.StatusOK, res)
}
