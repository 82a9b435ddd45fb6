// internal/app/features/session/handler.go
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	uierrors "github.com/edunaija/edunaija/internal/app/features/errors"
	loginstore "github.com/edunaija/edunaija/internal/app/store/logins"
	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Cap on the login-history page returned to the client.
const loginHistoryLimit = 20

// Handler reports the current session's identity and recent sign-in
// activity.
type Handler struct {
	Logins *loginstore.Store
	Log    *zap.Logger
}

// NewHandler creates a new session handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Logins: loginstore.New(db),
		Log:    logger,
	}
}

type sessionUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AuthMethod string `json:"auth_method"`
}

type sessionResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *sessionUser `json:"user"`
}

// ServeSession returns JSON with the current session's authentication
// status and identity. The user field is null for anonymous visitors.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(sessionResponse{IsAuthenticated: false})
		return
	}

	_ = json.NewEncoder(w).Encode(sessionResponse{
		IsAuthenticated: true,
		User: &sessionUser{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			AuthMethod: user.AuthMethod,
		},
	})
}

type loginEntry struct {
	Method string    `json:"method,omitempty"`
	Type   string    `json:"type"`
	At     time.Time `json:"at"`
}

// ServeLogins returns the signed-in user's recent sign-in and sign-out
// events, newest first.
func (h *Handler) ServeLogins(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteJSON(w, http.StatusUnauthorized, "Sign in to view login history.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	records, err := h.Logins.RecentForUser(ctx, user.ID, loginHistoryLimit)
	if err != nil {
		h.Log.Error("load login history failed", zap.Error(err), zap.String("user_id", user.ID))
		uierrors.WriteJSON(w, http.StatusInternalServerError, "Unable to load login history.")
		return
	}

	entries := make([]loginEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, loginEntry{Method: rec.Method, Type: rec.Type, At: rec.At})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]loginEntry{"logins": entries})
}
