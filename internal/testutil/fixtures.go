package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/invitecode"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:         primitive.NewObjectID(),
		Name:       name,
		InviteCode: invitecode.New(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateUser creates a test user in the given organization with a bcrypt
// hash of password.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password, role string, orgID primitive.ObjectID) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Email:          email,
		Password:       string(hash),
		OrganizationID: orgID,
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user in the given organization.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "password123", models.RoleAdmin, orgID)
}

// CreateManager creates a test manager user in the given organization.
func (f *Fixtures) CreateManager(ctx context.Context, name, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "password123", models.RoleManager, orgID)
}

// CreateMember creates a test member user in the given organization.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "password123", models.RoleMember, orgID)
}

// CreateDeactivatedUser creates a test user with the active flag cleared.
func (f *Fixtures) CreateDeactivatedUser(ctx context.Context, name, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, name, email, "password123", models.RoleMember, orgID)
	_, err := f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}
	user.IsActive = false
	return user
}

// CreateInvitation creates a pending invitation into the given organization.
func (f *Fixtures) CreateInvitation(ctx context.Context, email, role string, orgID, invitedBy primitive.ObjectID) models.Invitation {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Invitation{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Email:          email,
		Role:           role,
		InviteCode:     invitecode.New(),
		Status:         models.InviteStatusPending,
		InvitedBy:      invitedBy,
		ExpiresAt:      now.Add(models.InviteExpiry),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("invitations").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}

// CreateTask creates a test task in the given organization.
func (f *Fixtures) CreateTask(ctx context.Context, title string, orgID, assignedTo, createdBy primitive.ObjectID, status string, dueDate time.Time) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Description:    "Test task description",
		OrganizationID: orgID,
		AssignedTo:     assignedTo,
		CreatedBy:      createdBy,
		Category:       models.CategoryBug,
		Priority:       models.PriorityMedium,
		Status:         status,
		DueDate:        dueDate,
		Notifications:  []models.Notification{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
