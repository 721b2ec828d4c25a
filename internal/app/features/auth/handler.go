// internal/app/features/auth/handler.go
package auth

import (
	invitationstore "github.com/GodishalaAshwith/taskhub/internal/app/store/invitations"
	organizationstore "github.com/GodishalaAshwith/taskhub/internal/app/store/organizations"
	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auditlog"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/mailer"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for registration, login, invitations,
// and member administration.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Users   *userstore.Store
	Orgs    *organizationstore.Store
	Invites *invitationstore.Store
	Tokens  *auth.TokenService
	Mail    *mailer.Mailer
	Logins  *ratelimit.LoginLimiter
	Audit   *auditlog.Logger
	BaseURL string
}

func NewHandler(db *mongo.Database, tokens *auth.TokenService, mail *mailer.Mailer, audit *auditlog.Logger, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Users:   userstore.New(db),
		Orgs:    organizationstore.New(db),
		Invites: invitationstore.New(db),
		Tokens:  tokens,
		Mail:    mail,
		Logins:  ratelimit.NewLoginLimiter(),
		Audit:   audit,
		BaseURL: baseURL,
	}
}
