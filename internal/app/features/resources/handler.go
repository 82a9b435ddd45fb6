// internal/app/features/resources/handler.go
package resources

import (
	uierrors "github.com/edunaija/edunaija/internal/app/features/errors"
	resourcestore "github.com/edunaija/edunaija/internal/app/store/resources"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the resource catalog: browsing, searching, uploading,
// and the view/download counters.
type Handler struct {
	Store      *resourcestore.Store
	Storage    storage.Store
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
	Categories []string
}

func NewHandler(db *mongo.Database, fileStore storage.Store, errLog *uierrors.ErrorLogger, categories []string, logger *zap.Logger) *Handler {
	return &Handler{
		Store:      resourcestore.New(db),
		Storage:    fileStore,
		ErrLog:     errLog,
		Log:        logger,
		Categories: categories,
	}
}
