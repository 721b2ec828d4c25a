// internal/app/features/tasks/list.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeList handles GET /api/tasks: the organization's tasks, newest first,
// with assignee and creator summaries.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Tasks.ListByOrg(ctx, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-list: query", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, h.newUserResolver().shapeAll(ctx, list))
}

// ServeMyTasks handles GET /api/tasks/my/tasks: tasks assigned to the caller.
func (h *Handler) ServeMyTasks(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Tasks.ListByAssignee(ctx, cu.OrganizationID, cu.ID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-list: my tasks query", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, h.newUserResolver().shapeAll(ctx, list))
}

// ServeGet handles GET /api/tasks/{id}. Absent and cross-tenant both answer
// 404 so task ids cannot be probed across organizations.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
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

	task, err := h.Tasks.GetInOrg(ctx, taskID, cu.OrganizationID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-get: query", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, h.newUserResolver().shape(ctx, *task))
}
