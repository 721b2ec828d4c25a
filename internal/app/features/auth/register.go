// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/authutil"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/invitecode"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/normalize"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationType string `json:"organizationType"`
	OrganizationName string `json:"organizationName"`
	InviteCode       string `json:"inviteCode"`
}

// HandleRegister handles POST /api/auth/register.
//
// A new user either joins an existing organization through an invitation
// (code + matching email) or creates a new organization and becomes its
// admin. Email uniqueness is global across organizations.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		httpjson.Error(w, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.ServerError(w, h.Log, "register: email lookup", err)
		return
	}

	var (
		orgID primitive.ObjectID
		role  string
	)

	switch {
	case req.InviteCode != "":
		inv, err := h.Invites.FindConsumable(ctx, strings.TrimSpace(req.InviteCode), req.Email)
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid or expired invite code")
			return
		}
		if err != nil {
			httpjson.ServerError(w, h.Log, "register: invitation lookup", err)
			return
		}
		orgID = inv.OrganizationID
		role = inv.Role

		if _, err := h.Invites.MarkAccepted(ctx, inv.ID); err != nil {
			httpjson.ServerError(w, h.Log, "register: mark invitation accepted", err)
			return
		}

	case req.OrganizationType == "create" && req.OrganizationName != "":
		org, err := h.Orgs.Create(ctx, models.Organization{
			Name:       normalize.Name(req.OrganizationName),
			InviteCode: invitecode.New(),
		})
		if err != nil {
			httpjson.ServerError(w, h.Log, "register: create organization", err)
			return
		}
		orgID = org.ID
		role = models.RoleAdmin

	default:
		httpjson.Error(w, http.StatusBadRequest, "Must either provide an invite code or create a new organization")
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		httpjson.ServerError(w, h.Log, "register: hash password", err)
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hash,
		OrganizationID: orgID,
		Role:           role,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		httpjson.Error(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "register: create user", err)
		return
	}

	// For the create path, backfill the organization's creator now that the
	// user id exists. The two writes are not transactional.
	if role == models.RoleAdmin && req.OrganizationType == "create" {
		if err := h.Orgs.SetCreatedBy(ctx, orgID, user.ID); err != nil {
			h.Log.Error("register: set organization creator",
				zap.String("organization_id", orgID.Hex()), zap.Error(err))
		}
	}

	h.Audit.UserRegistered(ctx, r, user.ID, orgID, role)

	httpjson.Respond(w, http.StatusCreated, httpjson.Message{Message: "User registered successfully"})
}
