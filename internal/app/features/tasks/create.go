// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assignedTo"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
}

// HandleCreate handles POST /api/tasks (admin or manager). The organization
// and creator come from the authenticated context; the assignee must belong
// to the same organization.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.AssignedTo == "" || req.DueDate.IsZero() {
		httpjson.Error(w, http.StatusBadRequest, "Title, assignee, and due date are required")
		return
	}
	if !models.ValidCategory(req.Category) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if !models.ValidPriority(req.Priority) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid priority")
		return
	}

	assigneeID, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid assignee")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.GetInOrg(ctx, assigneeID, cu.OrganizationID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "Assignee is not a member of this organization")
			return
		}
		httpjson.ServerError(w, h.Log, "task-create: assignee lookup", err)
		return
	}

	task, err := h.Tasks.Create(ctx, models.Task{
		Title:          req.Title,
		Description:    req.Description,
		OrganizationID: cu.OrganizationID,
		AssignedTo:     assigneeID,
		CreatedBy:      cu.ID,
		Category:       req.Category,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
	})
	if err != nil {
		httpjson.ServerError(w, h.Log, "task-create: insert", err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, h.newUserResolver().shape(ctx, task))
}
