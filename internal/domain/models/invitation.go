// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation statuses. Accepted invitations are kept, never hard-deleted.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusExpired  = "expired"
)

// InviteExpiry is how long an invitation stays consumable.
const InviteExpiry = 7 * 24 * time.Hour

// Invitation grants membership in an organization at a predetermined role.
// It is consumable (status pending → accepted) exactly once, and only while
// ExpiresAt is in the future.
type Invitation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role" json:"role"`               // role to grant, default member
	InviteCode     string             `bson:"invite_code" json:"invite_code"` // unique
	Status         string             `bson:"status" json:"status"`
	InvitedBy      primitive.ObjectID `bson:"invited_by" json:"invited_by"`
	ExpiresAt      time.Time          `bson:"expires_at" json:"expires_at"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
