// internal/app/store/organizations/organizationstore.go
package organizationstore

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

// ErrDuplicateInviteCode is returned when the generated invite code collides
// with an existing organization. Callers retry with a fresh code.
var ErrDuplicateInviteCode = errors.New("an organization with this invite code already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.Name = normalize.Name(org.Name)
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateInviteCode
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// SetCreatedBy backfills the creator after the admin user record exists.
// Organization and admin creation are two separate writes with no atomicity
// between them; a crash in between leaves an orphaned organization.
func (s *Store) SetCreatedBy(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"created_by": userID, "updated_at": time.Now().UTC()}})
	return err
}

// Update modifies an organization's mutable fields and refreshes UpdatedAt.
// Empty fields are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, description string) (models.Organization, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = normalize.Name(name)
	}
	if description != "" {
		set["description"] = description
	}
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}).Err(); err != nil {
		return models.Organization{}, err
	}
	return s.GetByID(ctx, id)
}
