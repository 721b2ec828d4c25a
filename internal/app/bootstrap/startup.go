// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	taskstore "github.com/GodishalaAshwith/taskhub/internal/app/store/tasks"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// expiryWorker is started in Startup and stopped in Shutdown.
var expiryWorker *workers.TaskExpiry

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. TaskHub
// starts the background sweep that expires overdue tasks here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	expiryWorker = workers.NewTaskExpiry(taskstore.New(deps.MongoDatabase), logger, appCfg.SweepInterval)
	expiryWorker.Start()
	return nil
}
