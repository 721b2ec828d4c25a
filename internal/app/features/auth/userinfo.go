// internal/app/features/auth/userinfo.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type userOrganization struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
}

type userInfoResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         string           `json:"role"`
	IsActive     bool             `json:"is_active"`
	Organization userOrganization `json:"organization"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ServeUserInfo handles GET /api/auth/user: the caller's profile with an
// organization summary, password excluded.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, cu.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "user-info: user lookup", err)
		return
	}

	org, err := h.Orgs.GetByID(ctx, user.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "user-info: organization lookup", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, userInfoResponse{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
		Organization: userOrganization{
			ID:         org.ID.Hex(),
			Name:       org.Name,
			InviteCode: org.InviteCode,
		},
		CreatedAt: user.CreatedAt,
	})
}
