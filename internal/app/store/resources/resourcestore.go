// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/edunaija/edunaija/internal/app/system/htmlsanitize"
	"github.com/edunaija/edunaija/internal/app/system/normalize"
	"github.com/edunaija/edunaija/internal/app/system/search"
	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the resources collection.
type Store struct {
	c *mongo.Collection
}

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrLocatorRequired  = errors.New("either download_url or a file is required")
	ErrBadDownloadURL   = errors.New("download_url must be a valid http(s) URL")
	ErrUnknownCategory  = errors.New("category is not in the configured list")
	ErrUnknownStat      = errors.New(`stat must be "views" or "downloads"`)
	ErrNotFound         = errors.New("resource not found")
	ErrCategoryRequired = errors.New("category is required")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Create inserts a new Resource: assigns the ID and created_at, folds
// title_ci, sanitizes the description, normalizes tags, and leaves both
// counters at zero. categories is the deployment's allowed category list.
func (s *Store) Create(ctx context.Context, r models.Resource, categories []string) (models.Resource, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return models.Resource{}, ErrTitleRequired
	}
	r.Category = normalize.Category(r.Category)
	if r.Category == "" {
		return models.Resource{}, ErrCategoryRequired
	}
	if !categoryAllowed(r.Category, categories) {
		return models.Resource{}, ErrUnknownCategory
	}

	hasURL := strings.TrimSpace(r.DownloadURL) != ""
	hasFile := strings.TrimSpace(r.FilePath) != ""
	if !hasURL && !hasFile {
		return models.Resource{}, ErrLocatorRequired
	}
	if hasURL && !urlutil.IsValidAbsHTTPURL(r.DownloadURL) {
		return models.Resource{}, ErrBadDownloadURL
	}

	r.ID = primitive.NewObjectID()
	r.TitleCI = text.Fold(r.Title)
	r.Description = htmlsanitize.Text(r.Description)
	r.Tags = normalize.Tags(r.Tags)
	r.Views = 0
	r.Downloads = 0
	r.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Resource{}, fmt.Errorf("insert resource: %w", err)
	}
	return r, nil
}

func categoryAllowed(category string, categories []string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// FetchAll returns every resource, newest first.
func (s *Store) FetchAll(ctx context.Context) ([]models.Resource, error) {
	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, fmt.Errorf("find resources: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Resource
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	return out, nil
}

// GetByID returns one resource.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Resource, error) {
	var r models.Resource
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return models.Resource{}, ErrNotFound
	}
	if err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// IncrementStat adds 1 to the named counter. Only "views" and "downloads"
// are incrementable. Concurrent increments are safe; $inc needs no
// read-modify-write.
func (s *Store) IncrementStat(ctx context.Context, id primitive.ObjectID, stat string) error {
	if !models.IsValidStat(stat) {
		return ErrUnknownStat
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{stat: 1}})
	if err != nil {
		return fmt.Errorf("increment %s: %w", stat, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns resources matching an optional category (narrowed in the
// query, newest first) and an optional free-text term applied through the
// query engine's text predicate.
func (s *Store) Search(ctx context.Context, term, category string) ([]models.Resource, error) {
	filter := bson.M{}
	if category != "" && category != search.CategoryAll {
		filter["category"] = category
	}

	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Resource
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}

	if strings.TrimSpace(term) == "" {
		return out, nil
	}
	return search.Select(out, search.Params{Term: term}), nil
}
