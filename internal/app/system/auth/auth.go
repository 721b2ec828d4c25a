// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthUser is the resolved identity injected into r.Context() by the
// Authenticator. Password is never carried here.
type AuthUser struct {
	ID             primitive.ObjectID
	Name           string
	Email          string
	Role           string
	OrganizationID primitive.ObjectID
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag.
func CurrentUser(r *http.Request) (*AuthUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*AuthUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Test helper only.
func WithTestUser(r *http.Request, u *AuthUser) *http.Request {
	return withUser(r, u)
}

// Authenticator verifies bearer credentials and resolves them against the
// identity store on every request, so deactivations and role changes take
// effect immediately.
type Authenticator struct {
	Users  *userstore.Store
	Tokens *TokenService
	Log    *zap.Logger
}

func NewAuthenticator(users *userstore.Store, tokens *TokenService, logger *zap.Logger) *Authenticator {
	return &Authenticator{Users: users, Tokens: tokens, Log: logger}
}

// Require is the auth gate middleware. It rejects requests without a valid
// bearer token or whose user no longer exists or is inactive, and attaches
// the resolved user to the context for downstream handlers.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpjson.Error(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			httpjson.Error(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		claims, err := a.Tokens.Parse(tokenString)
		if err != nil {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		user, err := a.Users.GetByID(ctx, userID)
		if err != nil || !user.IsActive {
			httpjson.Error(w, http.StatusUnauthorized, "User not found or inactive")
			return
		}

		next.ServeHTTP(w, withUser(r, &AuthUser{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			Role:           user.Role,
			OrganizationID: user.OrganizationID,
		}))
	})
}

// RequireRole gates a route on an allow-list of roles. It expects Require to
// have already populated the user: no user is 401, wrong role is 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				httpjson.Error(w, http.StatusForbidden, "You don't have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsPrivileged reports whether the role may manage tasks and invitations.
func IsPrivileged(role string) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

func withUser(r *http.Request, u *AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
