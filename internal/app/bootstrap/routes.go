// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/GodishalaAshwith/taskhub/internal/app/features/auditlog"
	authfeature "github.com/GodishalaAshwith/taskhub/internal/app/features/auth"
	healthfeature "github.com/GodishalaAshwith/taskhub/internal/app/features/health"
	organizationsfeature "github.com/GodishalaAshwith/taskhub/internal/app/features/organizations"
	tasksfeature "github.com/GodishalaAshwith/taskhub/internal/app/features/tasks"
	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auditlog"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/mailer"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. TaskHub builds the token service and
// auth gate, then mounts the JSON feature routers: health, auth, tasks,
// organizations, and the admin audit listing.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokenService(appCfg.JWTSecret, appCfg.TokenExpiry)

	// The authenticator fetches fresh user data on each request so role
	// changes and deactivations take effect immediately.
	authn := auth.NewAuthenticator(userstore.New(deps.MongoDatabase), tokens, logger)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	audit := auditlog.New(deps.MongoDatabase, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration, login, invitations, member administration
	authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, mail, audit, appCfg.BaseURL, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler, authn))

	// Tasks and task notifications
	tasksHandler := tasksfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/tasks", tasksfeature.Routes(tasksHandler, authn))

	// The caller's organization
	orgHandler := organizationsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/organizations", organizationsfeature.Routes(orgHandler, authn))

	// Admin-only audit event listing
	auditHandler := auditlogfeature.NewHandler(audit, logger)
	r.Mount("/api/audit", auditlogfeature.Routes(auditHandler, authn))

	return r, nil
}
