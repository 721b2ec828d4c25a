// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the organization routes under the path where the caller
// mounts it. Typically: r.Mount("/api/organizations", organizations.Routes(handler, authn))
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.Get("/current", h.ServeCurrent)
		pr.With(auth.RequireRole(models.RoleAdmin)).
			Patch("/current", h.HandleUpdate)
	})

	return r
}
