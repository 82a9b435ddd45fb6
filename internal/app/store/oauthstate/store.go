package oauthstate

import (
	"context"
	"errors"
	"time"

	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store holds short-lived OAuth state tokens so callbacks can be tied
// back to the request that started the dance. Entries are one-time use
// and expire via a TTL index.
type Store struct {
	c *mongo.Collection
}

var ErrInvalidState = errors.New("unknown or expired oauth state")

const ttl = 10 * time.Minute

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Save records a state token with its post-login return path.
func (s *Store) Save(ctx context.Context, state, returnURL string) error {
	now := time.Now().UTC()
	_, err := s.c.InsertOne(ctx, models.OAuthState{
		ID:        primitive.NewObjectID(),
		State:     state,
		ReturnURL: returnURL,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	return err
}

// Validate consumes a state token. It returns the stored return path
// and deletes the entry so a token can only be used once.
func (s *Store) Validate(ctx context.Context, state string) (string, error) {
	var st models.OAuthState
	err := s.c.FindOneAndDelete(ctx, bson.M{"state": state}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return "", ErrInvalidState
	}
	if err != nil {
		return "", err
	}
	// TTL indexes sweep lazily, so check expiry here too.
	if time.Now().UTC().After(st.ExpiresAt) {
		return "", ErrInvalidState
	}
	return st.ReturnURL, nil
}

// CleanupExpired removes stale entries eagerly. The TTL index handles
// this in the background; this exists for tests and manual sweeps.
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
