package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is a shareable educational item: metadata plus an external
// locator and/or a stored file.
type Resource struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped

	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Category is one value from the deployment's configured list
	// (e.g. "mathematics", "english", "science").
	Category string `bson:"category" json:"category"`

	// Tags are lowercase labels in their original insertion order.
	Tags []string `bson:"tags,omitempty" json:"tags,omitempty"`

	// DownloadURL is an external locator. Empty when the resource was
	// uploaded as a file instead.
	DownloadURL string `bson:"download_url,omitempty" json:"download_url,omitempty"`

	FilePath string `bson:"file_path,omitempty" json:"file_path,omitempty"`
	FileName string `bson:"file_name,omitempty" json:"file_name,omitempty"`
	FileSize int64  `bson:"file_size,omitempty" json:"file_size,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Views     int64 `bson:"views" json:"views"`
	Downloads int64 `bson:"downloads" json:"downloads"`

	UploadedByID   *primitive.ObjectID `bson:"uploaded_by_id,omitempty" json:"uploaded_by_id,omitempty"`
	UploadedByName string              `bson:"uploaded_by_name,omitempty" json:"uploaded_by_name,omitempty"`
}

// Stat names accepted by the counter-increment operation.
const (
	StatViews     = "views"
	StatDownloads = "downloads"
)

// IsValidStat reports whether name is an incrementable counter.
func IsValidStat(name string) bool {
	return name == StatViews || name == StatDownloads
}

// DefaultCategories is the fallback category list when the deployment does
// not configure its own.
var DefaultCategories = []string{
	"mathematics",
	"english",
	"science",
	"social-studies",
	"vocational",
}
