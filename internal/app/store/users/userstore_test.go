package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/GodishalaAshwith/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")

	created, err := store.Create(ctx, models.User{
		Name:           "Member User",
		Email:          "  Member@Example.COM ",
		Password:       "hashed",
		OrganizationID: org.ID,
		Role:           "member",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "member@example.com" {
		t.Errorf("email: got %q, want normalized lowercase", created.Email)
	}
	if !created.IsActive {
		t.Error("expected new user to be active")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	testutil.EnsureIndexes(t, ctx, db)

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	fixtures.CreateMember(ctx, "First", "dupe@example.com", orgA.ID)

	// Email uniqueness is global, so the same email in another
	// organization still conflicts.
	_, err := store.Create(ctx, models.User{
		Name:           "Second",
		Email:          "dupe@example.com",
		Password:       "hashed",
		OrganizationID: orgB.ID,
		Role:           "member",
	})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")

	_, err := store.Create(ctx, models.User{
		Name:           "Bad Role",
		Email:          "badrole@example.com",
		Password:       "hashed",
		OrganizationID: org.ID,
		Role:           "superuser",
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestStore_GetInOrg_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	user := fixtures.CreateMember(ctx, "Member", "member@example.com", orgA.ID)

	if _, err := store.GetInOrg(ctx, user.ID, orgA.ID); err != nil {
		t.Fatalf("same-org lookup failed: %v", err)
	}

	_, err := store.GetInOrg(ctx, user.ID, orgB.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments for cross-tenant lookup, got %v", err)
	}
}

func TestStore_ListByOrg_ScopedAndSorted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	fixtures.CreateMember(ctx, "Zoe", "zoe@example.com", orgA.ID)
	fixtures.CreateAdmin(ctx, "Amy", "amy@example.com", orgA.ID)
	fixtures.CreateMember(ctx, "Outsider", "outsider@example.com", orgB.ID)

	users, err := store.ListByOrg(ctx, orgA.ID)
	if err != nil {
		t.Fatalf("ListByOrg failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.OrganizationID != orgA.ID {
			t.Errorf("user %q leaked from another organization", u.Email)
		}
	}
	// Sorted by role then name: admin before member.
	if users[0].Role != models.RoleAdmin {
		t.Errorf("expected admin first, got role %q", users[0].Role)
	}
}

func TestStore_UpdateRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	user := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)

	matched, err := store.UpdateRole(ctx, user.ID, org.ID, models.RoleManager)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 matched, got %d", matched)
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleManager {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleManager)
	}
}

func TestStore_UpdateRole_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	user := fixtures.CreateMember(ctx, "Member", "member@example.com", orgA.ID)

	matched, err := store.UpdateRole(ctx, user.ID, orgB.ID, models.RoleManager)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if matched != 0 {
		t.Fatalf("expected 0 matched for cross-tenant update, got %d", matched)
	}
}

func TestStore_Deactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	user := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)

	matched, err := store.Deactivate(ctx, user.ID, org.ID)
	if err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 matched, got %d", matched)
	}

	// Soft delete: the record survives with is_active false.
	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected user to be inactive")
	}
}
