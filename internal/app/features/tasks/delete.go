// internal/app/features/tasks/delete.go
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

// HandleDelete handles DELETE /api/tasks/{id} (admin or manager). Deletion
// is a hard delete, scoped to the caller's organization.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Tasks.Delete(ctx, taskID, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-delete: query", err)
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}

	httpjson.Respond(w, http.StatusOK, httpjson.Message{Message: "Task deleted successfully"})
}
