// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User belongs to exactly one organization. Removal from an organization is a
// soft delete: IsActive is cleared, the record stays.
//
// Password holds the bcrypt hash and is never serialized to JSON.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"` // stored lowercase, globally unique
	Password       string             `bson:"password" json:"-"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Role           string             `bson:"role" json:"role"` // admin | manager | member
	IsActive       bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
