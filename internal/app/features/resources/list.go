// internal/app/features/resources/list.go
package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/edunaija/edunaija/internal/app/system/jsonreq"
	"github.com/edunaija/edunaija/internal/app/system/search"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"github.com/edunaija/edunaija/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

type listResponse struct {
	Resources []models.Resource `json:"resources"`
	Total     int               `json:"total"`
}

// ServeList handles GET /api/resources. Filters combine: a text term,
// a category, and any number of tags, with an optional sort order.
//
//	?term=math&category=science&tags=waec,jss1&sort=mostViewed
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	params := search.Params{
		Term:     query.Get(r, "term"),
		Category: query.Get(r, "category"),
		Tags:     splitTags(r.URL.Query()["tags"]),
		Sort:     query.Get(r, "sort"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Store.FetchAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch resources failed", err, "Unable to load resources.")
		return
	}

	selected := search.Select(all, params)
	if selected == nil {
		selected = []models.Resource{}
	}
	jsonreq.Write(w, http.StatusOK, listResponse{Resources: selected, Total: len(selected)})
}

// ServeTags handles GET /api/resources/tags. It returns every distinct
// tag in the catalog, lowercased and sorted.
func (h *Handler) ServeTags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Store.FetchAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch resources for tags failed", err, "Unable to load tags.")
		return
	}

	tags := search.CollectTags(all)
	if tags == nil {
		tags = []string{}
	}
	jsonreq.Write(w, http.StatusOK, map[string][]string{"tags": tags})
}

// ServeSearch handles GET /api/resources/search?q=...&category=...
// The category narrows the query server-side before the text match runs.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	term := query.Search(r, "q")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := h.Store.Search(ctx, term, query.Get(r, "category"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "search resources failed", err, "Unable to search resources.")
		return
	}
	if found == nil {
		found = []models.Resource{}
	}
	jsonreq.Write(w, http.StatusOK, listResponse{Resources: found, Total: len(found)})
}

// splitTags accepts both repeated tags params and comma-separated values.
func splitTags(values []string) []string {
	var tags []string
	for _, raw := range values {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				tags = append(tags, p)
			}
		}
	}
	return tags
}
