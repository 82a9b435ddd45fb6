// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	authgooglefeature "github.com/edunaija/edunaija/internal/app/features/authgoogle"
	errorsfeature "github.com/edunaija/edunaija/internal/app/features/errors"
	healthfeature "github.com/edunaija/edunaija/internal/app/features/health"
	loginfeature "github.com/edunaija/edunaija/internal/app/features/login"
	logoutfeature "github.com/edunaija/edunaija/internal/app/features/logout"
	registerfeature "github.com/edunaija/edunaija/internal/app/features/register"
	resourcesfeature "github.com/edunaija/edunaija/internal/app/features/resources"
	sessionfeature "github.com/edunaija/edunaija/internal/app/features/session"
	loginstore "github.com/edunaija/edunaija/internal/app/store/logins"
	"github.com/edunaija/edunaija/internal/app/store/oauthstate"
	userstore "github.com/edunaija/edunaija/internal/app/store/users"
	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/app/system/authevents"
	"github.com/edunaija/edunaija/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// EduNaija applies session middleware and mounts JSON API routes for
// the resource catalog, authentication (email/password and Google), and
// session introspection, plus the health endpoint and file serving for
// uploaded resources.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"

	sessionTTL, err := time.ParseDuration(appCfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session_ttl %q: %w", appCfg.SessionTTL, err)
	}

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, sessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures disabled accounts and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Sign-in/sign-out notifications feed the login history.
	events := authevents.New()
	logins := loginstore.New(deps.MongoDatabase)
	events.Subscribe(func(evt authevents.Event) {
		rec := models.LoginRecord{
			Method: evt.Method,
			At:     evt.At,
		}
		switch evt.Type {
		case authevents.SignedIn:
			rec.Type = models.LoginTypeSignIn
		case authevents.SignedOut:
			rec.Type = models.LoginTypeSignOut
		default:
			return
		}
		if evt.User != nil {
			rec.UserID = evt.User.ID
			rec.Email = evt.User.Email
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := logins.Record(ctx, rec); err != nil {
			logger.Warn("login record write failed", zap.Error(err))
		}
	})

	// Uploaded resource files live on local disk and are served back
	// under the configured URL prefix.
	fileStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		return nil, fmt.Errorf("local storage init failed: %w", err)
	}

	stateStore := oauthstate.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.BaseURL, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Uploaded resource files
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Session introspection and login history for the frontend
	sessionHandler := sessionfeature.NewHandler(deps.MongoDatabase, logger)
	sessionfeature.MountRoutes(r, sessionHandler)

	// Authentication
	registerHandler := registerfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, events, logger)
	registerfeature.MountRoutes(r, registerHandler)

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, events, logger)
	loginfeature.MountRoutes(r, loginHandler)

	logoutHandler := logoutfeature.NewHandler(sessionMgr, events, logger)
	logoutfeature.MountRoutes(r, logoutHandler)

	googleHandler := authgooglefeature.NewHandler(
		deps.MongoDatabase, sessionMgr, events, stateStore,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Resource catalog
	resourcesHandler := resourcesfeature.NewHandler(deps.MongoDatabase, fileStore, errLog, appCfg.Categories, logger)
	r.Mount("/api/resources", resourcesfeature.Routes(resourcesHandler, sessionMgr.RequireSignedIn))

	return r, nil
}
