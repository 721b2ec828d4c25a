// internal/app/features/auth/members.go
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/normalize"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ServeMembers handles GET /api/auth/members: all users of the caller's
// organization sorted by role then name, passwords excluded.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListByOrg(ctx, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "members: list", err)
		return
	}

	members := make([]memberResponse, 0, len(users))
	for _, u := range users {
		members = append(members, memberResponse{
			ID:        u.ID.Hex(),
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
	httpjson.Respond(w, http.StatusOK, members)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// HandleUpdateRole handles PATCH /api/auth/users/{userId}/role (admin only).
// Admins cannot change their own role.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if userID == cu.ID {
		httpjson.Error(w, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	var req updateRoleRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	role := normalize.Role(req.Role)
	if !models.ValidRole(role) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Users.UpdateRole(ctx, userID, cu.OrganizationID, role)
	if err != nil {
		httpjson.ServerError(w, h.Log, "members: update role", err)
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "User not found")
		return
	}

	h.Audit.RoleChanged(ctx, r, cu.ID, userID, cu.OrganizationID, role)

	httpjson.Respond(w, http.StatusOK, httpjson.Message{Message: "User role updated successfully"})
}

// HandleRemoveUser handles DELETE /api/auth/users/{userId} (admin only).
// Removal is a soft delete: the user stays on record with is_active false,
// which also invalidates any outstanding tokens at the auth gate.
func (h *Handler) HandleRemoveUser(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if userID == cu.ID {
		httpjson.Error(w, http.StatusBadRequest, "Cannot remove yourself from the organization")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Users.Deactivate(ctx, userID, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "members: deactivate", err)
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "User not found")
		return
	}

	h.Audit.UserRemoved(ctx, r, cu.ID, userID, cu.OrganizationID)

	httpjson.Respond(w, http.StatusOK, httpjson.Message{Message: "User removed from organization successfully"})
}
