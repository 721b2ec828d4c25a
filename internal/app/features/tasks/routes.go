// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all task routes under the path where the caller mounts it.
// Typically: r.Mount("/api/tasks", tasks.Routes(handler, authn))
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Require)

		pr.With(auth.RequireRole(models.RoleAdmin, models.RoleManager)).
			Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)

		// Fixed segments go before the {id} wildcard.
		pr.Get("/my/tasks", h.ServeMyTasks)
		pr.Get("/my/notifications", h.ServeMyNotifications)
		pr.Patch("/notifications/{taskId}", h.HandleMarkRead)

		pr.Get("/{id}", h.ServeGet)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.With(auth.RequireRole(models.RoleAdmin, models.RoleManager)).
			Delete("/{id}", h.HandleDelete)
	})

	return r
}
