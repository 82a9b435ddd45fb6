// internal/app/features/resources/create.go
package resources

import (
	"context"
	"errors"
	"net/http"
	"strings"

	resourcestore "github.com/edunaija/edunaija/internal/app/store/resources"
	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/jsonreq"
	"github.com/edunaija/edunaija/internal/app/system/limits"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	DownloadURL string   `json:"download_url"`
}

// ServeCreate handles POST /api/resources. Requests carrying a JSON body
// link out to an external download URL; multipart requests upload the
// file itself. Both forms require a signed-in user.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "create resource without session", nil, "Sign in to share a resource.")
		return
	}

	var res models.Resource
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		res, err = h.resourceFromMultipart(w, r)
	} else {
		res, err = h.resourceFromJSON(w, r)
	}
	if err != nil {
		// The parse helpers have already written the response.
		return
	}

	uploaderID, idErr := primitive.ObjectIDFromHex(user.ID)
	if idErr == nil {
		res.UploadedByID = &uploaderID
	}
	res.UploadedByName = user.Name

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, res, h.Categories)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	h.Log.Info("resource created",
		zap.String("resource_id", created.ID.Hex()),
		zap.String("category", created.Category),
		zap.String("uploaded_by", user.ID))

	jsonreq.Write(w, http.StatusCreated, created)
}

// resourceFromJSON builds a resource from a JSON payload. On failure the
// response has been written and a non-nil error tells the caller to stop.
func (h *Handler) resourceFromJSON(w http.ResponseWriter, r *http.Request) (models.Resource, error) {
	var req createRequest
	if err := jsonreq.Decode(w, r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode resource payload failed", err, "Invalid request body.")
		return models.Resource{}, err
	}
	return models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		DownloadURL: req.DownloadURL,
	}, nil
}

// resourceFromMultipart builds a resource from a multipart upload. The
// file lands in storage before validation, so a rejected document can
// leave an orphan blob; stores prune those on their own schedule.
func (h *Handler) resourceFromMultipart(w http.ResponseWriter, r *http.Request) (models.Resource, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadSize)
	if err := r.ParseMultipartForm(limits.MaxUploadSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Upload is too large or malformed.")
		return models.Resource{}, err
	}

	res := models.Resource{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Tags:        splitTags([]string{r.FormValue("tags")}),
		DownloadURL: r.FormValue("download_url"),
	}

	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		// Link-only submission through a form; validation decides later
		// whether the download URL suffices.
		return res, nil
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read upload failed", err, "Unable to read uploaded file.")
		return models.Resource{}, err
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	contentType := header.Header.Get("Content-Type")
	info, err := uploadFile(ctx, h.Storage, header.Filename, file, header.Size, contentType)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "store upload failed", err, "Unable to store uploaded file.")
		return models.Resource{}, err
	}

	res.FilePath = info.Path
	res.FileName = info.FileName
	res.FileSize = info.Size
	return res, nil
}

func (h *Handler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, resourcestore.ErrTitleRequired),
		errors.Is(err, resourcestore.ErrCategoryRequired),
		errors.Is(err, resourcestore.ErrUnknownCategory),
		errors.Is(err, resourcestore.ErrLocatorRequired),
		errors.Is(err, resourcestore.ErrBadDownloadURL):
		h.ErrLog.LogUnprocessable(w, r, err.Error())
	default:
		h.ErrLog.LogServerError(w, r, "create resource failed", err, "Unable to save resource.")
	}
}
