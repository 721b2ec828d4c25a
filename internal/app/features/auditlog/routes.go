// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit routes under the path where the caller mounts it.
// Typically: r.Mount("/api/audit", auditlog.Routes(handler, authn))
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)
		pr.With(auth.RequireRole(models.RoleAdmin)).
			Get("/", h.ServeList)
	})

	return r
}
