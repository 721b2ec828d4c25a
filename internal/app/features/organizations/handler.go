// internal/app/features/organizations/handler.go
package organizations

import (
	"context"
	"errors"
	"net/http"
	"time"

	organizationstore "github.com/GodishalaAshwith/taskhub/internal/app/store/organizations"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/normalize"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the caller's organization.
type Handler struct {
	DB   *mongo.Database
	Log  *zap.Logger
	Orgs *organizationstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:   db,
		Log:  logger,
		Orgs: organizationstore.New(db),
	}
}

type organizationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	InviteCode  string    `json:"invite_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func shape(org models.Organization) organizationResponse {
	return organizationResponse{
		ID:          org.ID.Hex(),
		Name:        org.Name,
		Description: org.Description,
		InviteCode:  org.InviteCode,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

// ServeCurrent handles GET /api/organizations/current.
func (h *Handler) ServeCurrent(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, cu.OrganizationID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Organization not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "organization: lookup", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, shape(org))
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleUpdate handles PATCH /api/organizations/current (admin only).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "Organization name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.Update(ctx, cu.OrganizationID, req.Name, req.Description)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Organization not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "organization: update", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, shape(org))
}
