// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/edunaija/edunaija/internal/app/features/errors"
	userstore "github.com/edunaija/edunaija/internal/app/store/users"
	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/authevents"
	"github.com/edunaija/edunaija/internal/app/system/jsonreq"
	"github.com/edunaija/edunaija/internal/app/system/status"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// One message for every credential failure so responses do not reveal
// which emails have accounts.
const invalidCredentials = "Invalid email or password."

type Handler struct {
	Users      *userstore.Store
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Events     *authevents.Hub
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, events *authevents.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Events:     events,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServeLogin handles POST /api/login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonreq.Decode(w, r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login payload failed", err, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		uierrors.WriteJSON(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		uierrors.WriteJSON(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lookup user by email failed", err, "Unable to sign in.")
		return
	}

	// Accounts created through Google have no password to check.
	if u.AuthMethod != models.AuthPassword || len(u.PasswordHash) == 0 {
		uierrors.WriteJSON(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if !userstore.CheckPassword(u.PasswordHash, req.Password) {
		uierrors.WriteJSON(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if u.Status != status.Active {
		// Same reply as a bad credential so probes cannot tell a disabled
		// account from a nonexistent one. The real reason goes to the log.
		h.Log.Warn("sign-in rejected for disabled account",
			zap.String("user_id", u.ID.Hex()))
		uierrors.WriteJSON(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	sessionUser := &auth.SessionUser{
		ID:         u.ID.Hex(),
		Name:       u.FullName,
		Email:      u.Email,
		AuthMethod: u.AuthMethod,
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		h.ErrLog.LogServerError(w, r, "start session failed", err, "Unable to sign in.")
		return
	}
	h.Events.SignIn(sessionUser, models.AuthPassword)

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("method", models.AuthPassword))

	jsonreq.Write(w, http.StatusOK, loginResponse{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
	})
}
