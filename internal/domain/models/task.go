// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task categories.
const (
	CategoryBug         = "Bug"
	CategoryFeature     = "Feature"
	CategoryImprovement = "Improvement"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task statuses. StatusExpired is set only by the expiry sweep; members
// cannot set it through the update endpoint.
const (
	StatusTodo       = "Todo"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusExpired    = "Expired"
)

// ValidCategory reports whether c is a known task category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryBug, CategoryFeature, CategoryImprovement:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Notification is embedded on the task it belongs to. Entries are appended
// and never removed; only the Read flag is mutated in place.
type Notification struct {
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Read      bool      `bson:"read" json:"read"`
}

// Task is scoped to an organization and assigned to one of its users.
type Task struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	AssignedTo     primitive.ObjectID `bson:"assigned_to" json:"assigned_to"`
	CreatedBy      primitive.ObjectID `bson:"created_by" json:"created_by"`
	Category       string             `bson:"category" json:"category"` // Bug | Feature | Improvement
	Priority       string             `bson:"priority" json:"priority"` // Low | Medium | High
	Status         string             `bson:"status" json:"status"`     // Todo | In Progress | Completed | Expired
	DueDate        time.Time          `bson:"due_date" json:"due_date"`
	Notifications  []Notification     `bson:"notifications" json:"notifications"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
