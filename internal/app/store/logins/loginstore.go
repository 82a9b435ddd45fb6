package loginstore

import (
	"context"
	"time"

	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store records sign-in and sign-out events.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

func (s *Store) Record(ctx context.Context, rec models.LoginRecord) error {
	rec.ID = primitive.NewObjectID()
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// RecentForUser returns up to limit records for a user, newest first.
func (s *Store) RecentForUser(ctx context.Context, userID string, limit int64) ([]models.LoginRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LoginRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
