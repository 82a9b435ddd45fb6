package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/edunaija/edunaija/internal/app/system/normalize"
	"github.com/edunaija/edunaija/internal/app/system/status"
	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data. Documents
// are inserted directly, bypassing store validation, so tests control
// exactly what ends up in the database.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T

	// Each resource gets a strictly later created_at than the previous
	// one, so newest-first assertions stay deterministic even when
	// inserts land within the same millisecond.
	clock time.Time
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t, clock: time.Now().UTC().Add(-time.Hour)}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) nextCreatedAt() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// CreateResource creates a test resource with the given title, category,
// and tags. Returns the created resource with its generated ID.
func (f *Fixtures) CreateResource(ctx context.Context, title, category string, tags []string) models.Resource {
	f.t.Helper()

	r := models.Resource{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Test resource description.",
		Category:    category,
		Tags:        normalize.Tags(tags),
		DownloadURL: "https://files.example.com/" + primitive.NewObjectID().Hex() + ".pdf",
		CreatedAt:   f.nextCreatedAt(),
	}
	if _, err := f.db.Collection("resources").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("create test resource %q: %v", title, err)
	}
	return r
}

// CreateUser creates an active password-based test user.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password string) models.User {
	f.t.Helper()

	// MinCost keeps test runs fast; production hashing uses a higher cost.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash test password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     name,
		FullNameCI:   text.Fold(name),
		Email:        normalize.Email(email),
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
		Status:       status.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user %q: %v", email, err)
	}
	return u
}

// CreateGoogleUser creates an active test user linked to a Google account.
func (f *Fixtures) CreateGoogleUser(ctx context.Context, name, email, googleID string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Email:      normalize.Email(email),
		AuthMethod: models.AuthGoogle,
		GoogleID:   &googleID,
		Status:     status.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test google user %q: %v", email, err)
	}
	return u
}

// DisableUser marks an existing test user as disabled.
func (f *Fixtures) DisableUser(ctx context.Context, id primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("users").UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status.Disabled, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		f.t.Fatalf("disable test user: %v", err)
	}
}
