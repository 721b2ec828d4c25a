// internal/app/features/tasks/notifications.go
package tasks

import (
	"context"
	"net/http"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeMyNotifications handles GET /api/tasks/my/notifications: unread
// notification entries across the caller's assigned tasks, newest first.
func (h *Handler) ServeMyNotifications(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	notifications, err := h.Tasks.UnreadNotifications(ctx, cu.OrganizationID, cu.ID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "notifications: query", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, notifications)
}

// HandleMarkRead handles PATCH /api/tasks/notifications/{taskId}: marks all
// of one task's notifications read. The task must belong to the caller's
// organization and be assigned to the caller; anything else is a 404.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Tasks.MarkNotificationsRead(ctx, taskID, cu.OrganizationID, cu.ID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "notifications: mark read", err)
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}

	httpjson.Respond(w, http.StatusOK, httpjson.Message{Message: "Notifications marked as read"})
}
