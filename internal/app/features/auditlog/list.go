// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/auditlog"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/httpjson"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/paging"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
)

type listResponse struct {
	Events  []auditlog.Event `json:"events"`
	Page    int              `json:"page"`
	HasNext bool             `json:"has_next"`
}

// ServeList handles GET /api/audit (admin only).
//
// Events are scoped to the caller's organization and returned newest first.
// Optional query parameters: category, event_type, page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := auditlog.Filter{
		OrganizationID: cu.OrganizationID,
		Category:       strings.TrimSpace(r.URL.Query().Get("category")),
		EventType:      strings.TrimSpace(r.URL.Query().Get("event_type")),
	}
	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, hasNext, err := h.Events.Recent(ctx, filter, page)
	if err != nil {
		httpjson.ServerError(w, h.Log, "audit: list events", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{
		Events:  events,
		Page:    page,
		HasNext: hasNext,
	})
}
