package oauthstate

import (
	"errors"
	"testing"
	"time"

	"github.com/edunaija/edunaija/internal/domain/models"
	"github.com/edunaija/edunaija/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSaveValidateOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	if err := s.Save(ctx, "state-abc", "/resources"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ret, err := s.Validate(ctx, "state-abc")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ret != "/resources" {
		t.Errorf("return url = %q, want /resources", ret)
	}

	// Second use must fail.
	if _, err := s.Validate(ctx, "state-abc"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second Validate err = %v, want ErrInvalidState", err)
	}
}

func TestValidateUnknownState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	if _, err := s.Validate(ctx, "never-saved"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Validate err = %v, want ErrInvalidState", err)
	}
}

func TestValidateExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	now := time.Now().UTC()
	_, err := s.c.InsertOne(ctx, models.OAuthState{
		ID:        primitive.NewObjectID(),
		State:     "stale",
		CreatedAt: now.Add(-time.Hour),
		ExpiresAt: now.Add(-50 * time.Minute),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := s.Validate(ctx, "stale"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Validate err = %v, want ErrInvalidState", err)
	}
}

func TestCleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	now := time.Now().UTC()
	for i, exp := range []time.Time{now.Add(-time.Minute), now.Add(ttl)} {
		_, err := s.c.InsertOne(ctx, models.OAuthState{
			ID:        primitive.NewObjectID(),
			State:     string(rune('a' + i)),
			CreatedAt: now,
			ExpiresAt: exp,
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	n, err := s.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
