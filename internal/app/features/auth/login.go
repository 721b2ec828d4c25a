// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/authutil"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOrganization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type loginUser struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         string            `json:"role"`
	Organization loginOrganization `json:"organization"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// HandleLogin handles POST /api/auth/login.
//
// Unknown email, deactivated account, and wrong password all answer the same
// 400 so the response carries no enumeration signal.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if allowed, reason := h.Logins.Check(r, req.Email); !allowed {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Audit.LoginFailed(ctx, r, req.Email, "user not found")
		httpjson.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "login: user lookup", err)
		return
	}
	if !user.IsActive || !authutil.CheckPassword(user.Password, req.Password) {
		h.Audit.LoginFailed(ctx, r, req.Email, "invalid credentials")
		httpjson.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	org, err := h.Orgs.GetByID(ctx, user.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "login: organization lookup", err)
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Role, user.OrganizationID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "login: issue token", err)
		return
	}

	h.Logins.ResetEmail(req.Email)
	h.Audit.LoginSuccess(ctx, r, user.ID, user.OrganizationID)

	httpjson.Respond(w, http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
			Organization: loginOrganization{
				ID:   org.ID.Hex(),
				Name: org.Name,
			},
		},
	})
}
