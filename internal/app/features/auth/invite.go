// internal/app/features/auth/invite.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	invitationstore "github.com/GodishalaAshwith/taskhub/internal/app/store/invitations"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/invitecode"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/mailer"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/normalize"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.uber.org/zap"
)

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type inviteResponse struct {
	Message    string `json:"message"`
	InviteCode string `json:"inviteCode"`
}

// HandleInvite handles POST /api/auth/invite (admin or manager).
//
// Managers may not hand out the admin role. The invitation email is sent
// asynchronously and its failure is logged, never surfaced to the caller.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req inviteRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = normalize.Email(req.Email)
	if req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email is required")
		return
	}
	role := normalize.Role(req.Role)
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if cu.Role == models.RoleManager && role == models.RoleAdmin {
		httpjson.Error(w, http.StatusForbidden, "Managers cannot assign admin roles")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Users.ExistsInOrg(ctx, req.Email, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "invite: member lookup", err)
		return
	}
	if exists {
		httpjson.Error(w, http.StatusBadRequest, "User already exists in this organization")
		return
	}

	pending, err := h.Invites.HasPending(ctx, req.Email, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "invite: pending lookup", err)
		return
	}
	if pending {
		httpjson.Error(w, http.StatusBadRequest, "An active invitation already exists for this email")
		return
	}

	inv, err := h.Invites.Create(ctx, models.Invitation{
		OrganizationID: cu.OrganizationID,
		Email:          req.Email,
		Role:           role,
		InviteCode:     invitecode.New(),
		InvitedBy:      cu.ID,
	})
	if errors.Is(err, invitationstore.ErrDuplicateCode) {
		httpjson.ServerError(w, h.Log, "invite: code collision", err)
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "invite: create invitation", err)
		return
	}

	org, err := h.Orgs.GetByID(ctx, cu.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "invite: organization lookup", err)
		return
	}

	if h.Mail != nil {
		email := mailer.BuildInvitationEmail(mailer.InvitationEmailData{
			OrganizationName: org.Name,
			InviterName:      cu.Name,
			InviteCode:       inv.InviteCode,
			InviteURL:        fmt.Sprintf("%s/register?invite=%s", h.BaseURL, inv.InviteCode),
		})
		email.To = inv.Email
		go func() {
			if err := h.Mail.Send(email); err != nil {
				h.Log.Error("invite: send email",
					zap.String("to", email.To), zap.Error(err))
			}
		}()
	}

	h.Audit.InvitationSent(ctx, r, cu.ID, cu.OrganizationID, inv.Email, inv.Role)

	httpjson.Respond(w, http.StatusCreated, inviteResponse{
		Message:    "Invitation sent successfully",
		InviteCode: inv.InviteCode,
	})
}
