package tasks_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tasksfeature "github.com/GodishalaAshwith/taskhub/internal/app/features/tasks"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"github.com/GodishalaAshwith/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*tasksfeature.Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return tasksfeature.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db), db
}

func TestCreate_Success(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)

	req := testutil.NewJSONRequest(t, "POST", "/api/tasks", map[string]any{
		"title":       "Fix login bug",
		"description": "Token refresh fails on Safari",
		"assignedTo":  member.ID.Hex(),
		"category":    "Bug",
		"priority":    "High",
		"dueDate":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	req = testutil.AsUser(req, admin)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Title      string `json:"title"`
		Status     string `json:"status"`
		AssignedTo struct {
			Email string `json:"email"`
		} `json:"assigned_to"`
		CreatedBy struct {
			Email string `json:"email"`
		} `json:"created_by"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != models.StatusTodo {
		t.Errorf("status: got %q, want %q", resp.Status, models.StatusTodo)
	}
	if resp.AssignedTo.Email != "member@example.com" {
		t.Errorf("assignee email: got %q", resp.AssignedTo.Email)
	}
	if resp.CreatedBy.Email != "admin@example.com" {
		t.Errorf("creator email: got %q", resp.CreatedBy.Email)
	}
}

func TestCreate_AssigneeOutsideOrg(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", orgA.ID)
	outsider := fixtures.CreateMember(ctx, "Outsider", "outsider@example.com", orgB.ID)

	req := testutil.NewJSONRequest(t, "POST", "/api/tasks", map[string]any{
		"title":       "Sneaky assignment",
		"description": "should not work",
		"assignedTo":  outsider.ID.Hex(),
		"category":    "Bug",
		"priority":    "Low",
		"dueDate":     time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	req = testutil.AsUser(req, admin)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for cross-org assignee, got %d", rec.Code)
	}
}

func TestCreate_InvalidCategory(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)

	req := testutil.NewJSONRequest(t, "POST", "/api/tasks", map[string]any{
		"title":       "Bad category",
		"description": "x",
		"assignedTo":  admin.ID.Hex(),
		"category":    "Chore",
		"priority":    "Low",
		"dueDate":     time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	req = testutil.AsUser(req, admin)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGet_CrossTenant(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	adminA := fixtures.CreateAdmin(ctx, "Admin A", "admin-a@example.com", orgA.ID)
	adminB := fixtures.CreateAdmin(ctx, "Admin B", "admin-b@example.com", orgB.ID)
	task := fixtures.CreateTask(ctx, "Org A task", orgA.ID, adminA.ID, adminA.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "GET", "/api/tasks/"+task.ID.Hex(), nil)
	req = testutil.AsUser(req, adminB)
	req = testutil.WithChiURLParam(req, "id", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cross-tenant read, got %d", rec.Code)
	}
}

func TestUpdate_MemberStatusOnly(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Assigned work", org.ID, member.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))

	// The assigned member changes status; the title field is ignored.
	req := testutil.NewJSONRequest(t, "PATCH", "/api/tasks/"+task.ID.Hex(), map[string]any{
		"status": "In Progress",
		"title":  "Hijacked title",
	})
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != models.StatusInProgress {
		t.Errorf("status: got %q, want %q", resp.Status, models.StatusInProgress)
	}
	if resp.Title != "Assigned work" {
		t.Errorf("title: got %q, member must not change it", resp.Title)
	}
}

func TestUpdate_MemberCannotSetExpired(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Assigned work", org.ID, member.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "PATCH", "/api/tasks/"+task.ID.Hex(), map[string]any{
		"status": "Expired",
	})
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	// Silently ignored, not rejected.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != models.StatusTodo {
		t.Errorf("status: got %q, want unchanged %q", resp.Status, models.StatusTodo)
	}
}

func TestUpdate_NonAssigneeMemberForbidden(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	assignee := fixtures.CreateMember(ctx, "Assignee", "assignee@example.com", org.ID)
	other := fixtures.CreateMember(ctx, "Other", "other@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Assigned work", org.ID, assignee.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "PATCH", "/api/tasks/"+task.ID.Hex(), map[string]any{
		"status": "Completed",
	})
	req = testutil.AsUser(req, other)
	req = testutil.WithChiURLParam(req, "id", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUpdate_ManagerChangesAnyField(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	manager := fixtures.CreateManager(ctx, "Manager", "manager@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Old title", org.ID, member.ID, manager.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "PATCH", "/api/tasks/"+task.ID.Hex(), map[string]any{
		"title":    "New title",
		"priority": "High",
	})
	req = testutil.AsUser(req, manager)
	req = testutil.WithChiURLParam(req, "id", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Title    string `json:"title"`
		Priority string `json:"priority"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Title != "New title" {
		t.Errorf("title: got %q", resp.Title)
	}
	if resp.Priority != models.PriorityHigh {
		t.Errorf("priority: got %q", resp.Priority)
	}
}

func TestDelete_Success(t *testing.T) {
	h, fixtures, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Doomed", org.ID, admin.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "DELETE", "/api/tasks/"+task.ID.Hex(), nil)
	req = testutil.AsUser(req, admin)
	req = testutil.WithChiURLParam(req, "id", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	count, err := db.Collection("tasks").CountDocuments(ctx, bson.M{"_id": task.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Error("expected task to be hard-deleted")
	}
}

func TestMyTasks(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)
	fixtures.CreateTask(ctx, "Mine", org.ID, member.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))
	fixtures.CreateTask(ctx, "Not mine", org.ID, admin.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "GET", "/api/tasks/my/tasks", nil)
	req = testutil.AsUser(req, member)
	rec := httptest.NewRecorder()

	h.ServeMyTasks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []struct {
		Title string `json:"title"`
	}
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 || list[0].Title != "Mine" {
		t.Fatalf("expected only the member's task, got %v", list)
	}
}

func TestNotifications_Flow(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Overdue", org.ID, member.ID, admin.ID, models.StatusTodo, time.Now().Add(-time.Hour))

	if _, err := h.Tasks.Expire(ctx, task.ID, models.Notification{
		Message:   `Task "Overdue" has expired`,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("Expire failed: %v", err)
	}

	req := testutil.NewJSONRequest(t, "GET", "/api/tasks/my/notifications", nil)
	req = testutil.AsUser(req, member)
	rec := httptest.NewRecorder()

	h.ServeMyNotifications(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []struct {
		Message string `json:"message"`
		Read    bool   `json:"read"`
	}
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}

	// Mark them read, then the feed is empty.
	req = testutil.NewJSONRequest(t, "PATCH", "/api/tasks/notifications/"+task.ID.Hex(), nil)
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "taskId", task.ID.Hex())
	rec = httptest.NewRecorder()

	h.HandleMarkRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	req = testutil.NewJSONRequest(t, "GET", "/api/tasks/my/notifications", nil)
	req = testutil.AsUser(req, member)
	rec = httptest.NewRecorder()

	h.ServeMyNotifications(rec, req)

	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 0 {
		t.Fatalf("expected 0 notifications after mark-read, got %d", len(list))
	}
}

func TestMarkRead_NonAssignee(t *testing.T) {
	h, fixtures, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com", org.ID)
	member := fixtures.CreateMember(ctx, "Member", "member@example.com", org.ID)
	task := fixtures.CreateTask(ctx, "Assigned work", org.ID, member.ID, admin.ID, models.StatusTodo, time.Now().Add(time.Hour))

	req := testutil.NewJSONRequest(t, "PATCH", "/api/tasks/notifications/"+task.ID.Hex(), nil)
	req = testutil.AsUser(req, admin)
	req = testutil.WithChiURLParam(req, "taskId", task.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleMarkRead(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-assignee, got %d", rec.Code)
	}
}
