// internal/app/features/tasks/handler.go
package tasks

import (
	taskstore "github.com/GodishalaAshwith/taskhub/internal/app/store/tasks"
	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for tasks and task notifications.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Tasks *taskstore.Store
	Users *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Tasks: taskstore.New(db),
		Users: userstore.New(db),
	}
}
