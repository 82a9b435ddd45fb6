// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/edunaija/edunaija/internal/app/store/oauthstate"
	"github.com/edunaija/edunaija/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// stateCleanup runs for the life of the process; Shutdown stops it.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to prepare shared resources, warm caches, or perform any app-wide
// setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// The upload directory must exist before the first file lands in it.
	if err := os.MkdirAll(appCfg.StorageLocalPath, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", appCfg.StorageLocalPath, err)
	}

	stateCleanup = workers.NewStateCleanup(oauthstate.New(deps.MongoDatabase), logger, 1*time.Hour)
	stateCleanup.Start()

	return nil
}
