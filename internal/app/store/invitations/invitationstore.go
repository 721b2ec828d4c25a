// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"errors"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/normalize"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateCode is returned when the generated invite code collides
	// with an existing invitation.
	ErrDuplicateCode = errors.New("an invitation with this code already exists")
	errBadRole       = errors.New(`role must be "admin"|"manager"|"member"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invitations")}
}

// Create inserts a pending invitation with a 7-day expiry.
func (s *Store) Create(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	inv.ID = primitive.NewObjectID()
	inv.Email = normalize.Email(inv.Email)
	if inv.Role == "" {
		inv.Role = models.RoleMember
	}
	if !models.ValidRole(inv.Role) {
		return models.Invitation{}, errBadRole
	}
	inv.Status = models.InviteStatusPending

	now := time.Now().UTC()
	if inv.ExpiresAt.IsZero() {
		inv.ExpiresAt = now.Add(models.InviteExpiry)
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Invitation{}, ErrDuplicateCode
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

// FindConsumable returns the pending, unexpired invitation matching both the
// code and the email exactly. Returns mongo.ErrNoDocuments otherwise, so an
// accepted, expired, or mismatched invitation looks the same as a missing one.
func (s *Store) FindConsumable(ctx context.Context, code, email string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.c.FindOne(ctx, bson.M{
		"invite_code": code,
		"email":       normalize.Email(email),
		"status":      models.InviteStatusPending,
		"expires_at":  bson.M{"$gt": time.Now().UTC()},
	}).Decode(&inv)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// HasPending reports whether a pending, unexpired invitation already exists
// for this email within the organization.
func (s *Store) HasPending(ctx context.Context, email string, orgID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email":           normalize.Email(email),
		"organization_id": orgID,
		"status":          models.InviteStatusPending,
		"expires_at":      bson.M{"$gt": time.Now().UTC()},
	}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// MarkAccepted transitions an invitation from pending to accepted. The status
// filter makes acceptance single-use: a second attempt matches nothing.
func (s *Store) MarkAccepted(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.InviteStatusPending},
		bson.M{"$set": bson.M{"status": models.InviteStatusAccepted, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
