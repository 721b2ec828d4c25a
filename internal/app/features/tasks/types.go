// internal/app/features/tasks/types.go
package tasks

import (
	"context"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userSummary is the embedded assignee/creator shape in task responses.
type userSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type taskResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	AssignedTo    userSummary           `json:"assigned_to"`
	CreatedBy     userSummary           `json:"created_by"`
	Category      string                `json:"category"`
	Priority      string                `json:"priority"`
	Status        string                `json:"status"`
	DueDate       time.Time             `json:"due_date"`
	Notifications []models.Notification `json:"notifications"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// userResolver caches name/email lookups while shaping a batch of tasks, so
// a list response hits the users collection once per distinct user.
type userResolver struct {
	h     *Handler
	cache map[primitive.ObjectID]userSummary
}

func (h *Handler) newUserResolver() *userResolver {
	return &userResolver{h: h, cache: make(map[primitive.ObjectID]userSummary)}
}

func (r *userResolver) summary(ctx context.Context, id primitive.ObjectID) userSummary {
	if s, ok := r.cache[id]; ok {
		return s
	}
	s := userSummary{ID: id.Hex()}
	if u, err := r.h.Users.GetByID(ctx, id); err == nil {
		s.Name = u.Name
		s.Email = u.Email
	}
	r.cache[id] = s
	return s
}

func (r *userResolver) shape(ctx context.Context, t models.Task) taskResponse {
	notifications := t.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return taskResponse{
		ID:            t.ID.Hex(),
		Title:         t.Title,
		Description:   t.Description,
		AssignedTo:    r.summary(ctx, t.AssignedTo),
		CreatedBy:     r.summary(ctx, t.CreatedBy),
		Category:      t.Category,
		Priority:      t.Priority,
		Status:        t.Status,
		DueDate:       t.DueDate,
		Notifications: notifications,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *userResolver) shapeAll(ctx context.Context, ts []models.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, r.shape(ctx, t))
	}
	return out
}
