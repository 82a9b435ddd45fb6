package userstore

import (
	"errors"
	"net/http"

	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher resolves session user ids into display identities for the
// session middleware. Disabled accounts resolve to nothing, which ends
// their sessions on the next request.
type Fetcher struct {
	store *Store
}

func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

func (f *Fetcher) FetchSessionUser(r *http.Request, userID string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	u, err := f.store.GetByID(r.Context(), oid)
	if err != nil {
		return nil, err
	}
	if u.Status != status.Active {
		return nil, errors.New("account disabled")
	}
	return &auth.SessionUser{
		ID:         u.ID.Hex(),
		Name:       u.FullName,
		Email:      u.Email,
		AuthMethod: u.AuthMethod,
	}, nil
}
