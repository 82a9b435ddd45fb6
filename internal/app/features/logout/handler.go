// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/authevents"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Events     *authevents.Hub
}

func NewHandler(sessionMgr *auth.SessionManager, events *authevents.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Events:     events,
	}
}

// ServeLogout handles POST /api/logout. Signing out an anonymous
// session is a no-op that still replies 204, so clients can call it
// unconditionally.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		// Still reply 204: the deletion cookie went out even if the old
		// session failed to decode.
		h.Log.Warn("sign out: clear session", zap.Error(err))
	}

	if user != nil {
		h.Events.SignOut(user)
		h.Log.Info("user signed out", zap.String("user_id", user.ID))
	}

	w.WriteHeader(http.StatusNoContent)
}
