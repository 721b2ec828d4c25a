// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler serves the admin-only audit event listing.
type Handler struct {
	Log    *zap.Logger
	Events *auditlog.Logger
}

func NewHandler(events *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Events: events,
	}
}
