// internal/app/features/auth/routes.go
package auth

import (
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all auth routes under the path where the caller mounts it.
// Typically: r.Mount("/api/auth", auth.Routes(handler, authn))
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Authenticated
	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.Get("/user", h.ServeUserInfo)
		pr.Get("/members", h.ServeMembers)

		pr.With(auth.RequireRole(models.RoleAdmin, models.RoleManager)).
			Post("/invite", h.HandleInvite)

		pr.With(auth.RequireRole(models.RoleAdmin)).
			Patch("/users/{userId}/role", h.HandleUpdateRole)
		pr.With(auth.RequireRole(models.RoleAdmin)).
			Delete("/users/{userId}", h.HandleRemoveUser)
	})

	return r
}
