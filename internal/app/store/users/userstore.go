package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/edunaija/edunaija/internal/app/system/normalize"
	"github.com/edunaija/edunaija/internal/app/system/status"
	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Store owns the users collection.
type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateEmail is returned when the email already has an account.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrNotFound       = errors.New("user not found")
	errBadAuthMethod  = errors.New(`auth_method must be "password" or "google"`)
	errBadStatus      = errors.New(`status must be "active" or "disabled"`)
	errNoCredential   = errors.New("password accounts need a password hash; google accounts need a google id")
)

const bcryptCost = 12

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.AuthMethod = normalize.AuthMethod(u.AuthMethod)
	u.Status = normalize.Status(u.Status)
	if u.Status == "" {
		u.Status = status.Active
	}

	switch u.AuthMethod {
	case models.AuthPassword, models.AuthGoogle:
	default:
		return models.User{}, errBadAuthMethod
	}
	if !status.IsValid(u.Status) {
		return models.User{}, errBadStatus
	}
	if u.AuthMethod == models.AuthPassword && len(u.PasswordHash) == 0 {
		return models.User{}, errNoCredential
	}
	if u.AuthMethod == models.AuthGoogle && (u.GoogleID == nil || *u.GoogleID == "") {
		return models.User{}, errNoCredential
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleID looks up a user by linked Google subject id.
func (s *Store) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// LinkGoogleID records the Google subject id on an existing account, for
// users first found by email during a federated sign-in.
func (s *Store) LinkGoogleID(ctx context.Context, id primitive.ObjectID, googleID string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"google_id":  googleID,
		"updated_at": time.Now().UTC(),
	}})
	return err
}
