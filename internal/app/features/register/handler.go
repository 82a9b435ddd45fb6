// internal/app/features/register/handler.go
package register

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/edunaija/edunaija/internal/app/features/errors"
	userstore "github.com/edunaija/edunaija/internal/app/store/users"
	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/authevents"
	"github.com/edunaija/edunaija/internal/app/system/inputval"
	"github.com/edunaija/edunaija/internal/app/system/jsonreq"
	"github.com/edunaija/edunaija/internal/app/system/timeouts"
	"github.com/edunaija/edunaija/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

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

type registerRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServeRegister handles POST /api/register. Field validation runs
// before any database work, so a mismatched confirmation never costs a
// lookup. Success creates the account, starts a session, and replies 201.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := jsonreq.Decode(w, r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode register payload failed", err, "Invalid request body.")
		return
	}

	if msg := inputval.ValidateFullName(req.FullName); msg != "" {
		h.ErrLog.LogUnprocessable(w, r, msg)
		return
	}
	if !inputval.IsValidEmail(strings.TrimSpace(req.Email)) {
		h.ErrLog.LogUnprocessable(w, r, "Please enter a valid email address.")
		return
	}
	if msg := inputval.ValidatePassword(req.Password); msg != "" {
		h.ErrLog.LogUnprocessable(w, r, msg)
		return
	}
	if req.Password != req.ConfirmPassword {
		h.ErrLog.LogUnprocessable(w, r, "Passwords do not match.")
		return
	}

	hash, err := userstore.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Unable to create account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.ErrLog.LogConflict(w, r, "register duplicate email", err, "An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Unable to create account.")
		return
	}

	sessionUser := &auth.SessionUser{
		ID:         u.ID.Hex(),
		Name:       u.FullName,
		Email:      u.Email,
		AuthMethod: u.AuthMethod,
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		h.ErrLog.LogServerError(w, r, "start session after register failed", err, "Account created, but sign-in failed. Please log in.")
		return
	}
	h.Events.SignIn(sessionUser, models.AuthPassword)

	h.Log.Info("user registered",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", u.Email))

	jsonreq.Write(w, http.StatusCreated, registerResponse{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
	})
}
