package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userstore "github.com/GodishalaAshwith/taskhub/internal/app/store/users"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/auth"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/GodishalaAshwith/taskhub/internal/testutil"
	"go.uber.org/zap"
)

func newAuthenticator(t *testing.T) (*auth.Authenticator, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	authn := auth.NewAuthenticator(userstore.New(db), tokens, zap.NewNop())
	return authn, testutil.NewFixtures(t, db)
}

// okHandler answers 200 only when a user made it through the gate.
func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); !ok {
			t.Error("expected user in context past the auth gate")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequire_ValidToken(t *testing.T) {
	authn, fixtures := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	user := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)

	token, err := authn.Tokens.Issue(user.ID.Hex(), user.Role, org.ID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authn.Require(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRequire_MissingHeader(t *testing.T) {
	authn, _ := newAuthenticator(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()

	authn.Require(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequire_GarbageToken(t *testing.T) {
	authn, _ := newAuthenticator(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()

	authn.Require(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequire_DeactivatedUser(t *testing.T) {
	authn, fixtures := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	user := fixtures.CreateDeactivatedUser(ctx, "Gone", "gone@example.com", org.ID)

	token, err := authn.Tokens.Issue(user.ID.Hex(), user.Role, org.ID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authn.Require(okHandler(t)).ServeHTTP(rec, req)

	// A token issued before deactivation stops working immediately.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated user, got %d", rec.Code)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	handler := auth.RequireRole(models.RoleAdmin, models.RoleManager)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("POST", "/tasks", nil)
	req = auth.WithTestUser(req, &auth.AuthUser{Role: models.RoleManager})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	handler := auth.RequireRole(models.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("POST", "/tasks", nil)
	req = auth.WithTestUser(req, &auth.AuthUser{Role: models.RoleMember})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_NoUser(t *testing.T) {
	handler := auth.RequireRole(models.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("POST", "/tasks", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
