// internal/app/features/tasks/update.go
package tasks

import (
	"context"
	"errors"
	"net/http"
	"time"

	taskstore "github.com/GodishalaAshwith/taskhub/internal/app/store/tasks"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type updateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssignedTo  *string    `json:"assignedTo"`
	Category    *string    `json:"category"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// HandleUpdate handles PATCH /api/tasks/{id}.
//
// Admins and managers may change any field except the organization and
// creator. The assigned member may change only the status, and may not set
// Expired; a member's attempt to set Expired or touch other fields is
// silently ignored rather than rejected. Anyone else gets a 403.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.Tasks.GetInOrg(ctx, taskID, cu.OrganizationID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-update: load", err)
		return
	}

	privileged := auth.IsPrivileged(cu.Role)
	if !privileged && task.AssignedTo != cu.ID {
		httpjson.Error(w, http.StatusForbidden, "You don't have permission to update this task")
		return
	}

	var upd taskstore.Update
	if privileged {
		upd, err = h.buildPrivilegedUpdate(req)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	} else if req.Status != nil && *req.Status != models.StatusExpired {
		if !models.ValidStatus(*req.Status) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid status")
			return
		}
		upd.Status = req.Status
	}

	updated, err := h.Tasks.Apply(ctx, taskID, cu.OrganizationID, upd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-update: apply", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, h.newUserResolver().shape(ctx, *updated))
}

var (
	errInvalidCategory = errors.New("Invalid category")
	errInvalidPriority = errors.New("Invalid priority")
	errInvalidStatus   = errors.New("Invalid status")
	errInvalidAssignee = errors.New("Invalid assignee")
)

func (h *Handler) buildPrivilegedUpdate(req updateRequest) (taskstore.Update, error) {
	var upd taskstore.Update
	upd.Title = req.Title
	upd.Description = req.Description
	upd.DueDate = req.DueDate

	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return upd, errInvalidCategory
		}
		upd.Category = req.Category
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return upd, errInvalidPriority
		}
		upd.Priority = req.Priority
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return upd, errInvalidStatus
		}
		upd.Status = req.Status
	}
	if req.AssignedTo != nil {
		id, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			return upd, errInvalidAssignee
		}
		upd.AssignedTo = &id
	}
	return upd, nil
}
