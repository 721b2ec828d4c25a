// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/htmlsanitize"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	errBadCategory = errors.New(`category must be "Bug"|"Feature"|"Improvement"`)
	errBadPriority = errors.New(`priority must be "Low"|"Medium"|"High"`)
	errBadStatus   = errors.New(`status must be "Todo"|"In Progress"|"Completed"|"Expired"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Create inserts a task after sanitizing text fields and validating enums.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.Title = htmlsanitize.Strip(t.Title)
	t.Description = htmlsanitize.Sanitize(t.Description)
	if t.Status == "" {
		t.Status = models.StatusTodo
	}

	if !models.ValidCategory(t.Category) {
		return models.Task{}, errBadCategory
	}
	if !models.ValidPriority(t.Priority) {
		return models.Task{}, errBadPriority
	}
	if !models.ValidStatus(t.Status) {
		return models.Task{}, errBadStatus
	}
	if t.Notifications == nil {
		t.Notifications = []models.Notification{}
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetInOrg loads a task only if it belongs to the given organization.
// Absent and cross-tenant both surface as mongo.ErrNoDocuments.
func (s *Store) GetInOrg(ctx context.Context, id, orgID primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByOrg returns the organization's tasks, newest first.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Task, error) {
	return s.list(ctx, bson.M{"organization_id": orgID})
}

// ListByAssignee returns the organization's tasks assigned to one user,
// newest first.
func (s *Store) ListByAssignee(ctx context.Context, orgID, userID primitive.ObjectID) ([]models.Task, error) {
	return s.list(ctx, bson.M{"organization_id": orgID, "assigned_to": userID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update holds the task fields a privileged caller may change. Nil pointers
// leave the stored value untouched. Organization and creator are not
// updatable through any path.
type Update struct {
	Title       *string
	Description *string
	AssignedTo  *primitive.ObjectID
	Category    *string
	Priority    *string
	Status      *string
	DueDate     *time.Time
}

// Apply patches a task in place, scoped to the organization, and returns the
// updated document. Returns mongo.ErrNoDocuments if absent or cross-tenant.
func (s *Store) Apply(ctx context.Context, id, orgID primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = htmlsanitize.Strip(*upd.Title)
	}
	if upd.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*upd.Description)
	}
	if upd.AssignedTo != nil {
		set["assigned_to"] = *upd.AssignedTo
	}
	if upd.Category != nil {
		if !models.ValidCategory(*upd.Category) {
			return nil, errBadCategory
		}
		set["category"] = *upd.Category
	}
	if upd.Priority != nil {
		if !models.ValidPriority(*upd.Priority) {
			return nil, errBadPriority
		}
		set["priority"] = *upd.Priority
	}
	if upd.Status != nil {
		if !models.ValidStatus(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "organization_id": orgID},
		bson.M{"$set": set}, opts).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a task, scoped to the organization. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FindOverdue returns tasks past their due date that have not yet been
// expired, across all organizations. The sweep is the only caller and is
// deliberately tenant-unscoped.
func (s *Store) FindOverdue(ctx context.Context, now time.Time) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"due_date": bson.M{"$lt": now},
		"status":   bson.M{"$ne": models.StatusExpired},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Expire marks one task expired and appends the expiry notification in a
// single write. The status filter keeps it idempotent: an already-expired
// task matches nothing, so re-running never double-appends.
func (s *Store) Expire(ctx context.Context, id primitive.ObjectID, n models.Notification) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.StatusExpired}},
		bson.M{
			"$set":  bson.M{"status": models.StatusExpired, "updated_at": time.Now().UTC()},
			"$push": bson.M{"notifications": n},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// UnreadNotifications flattens the unread notification entries across all
// tasks assigned to one user in the organization, newest first.
func (s *Store) UnreadNotifications(ctx context.Context, orgID, userID primitive.ObjectID) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"organization_id":    orgID,
		"assigned_to":        userID,
		"notifications.read": false,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}

	notifications := []models.Notification{}
	for _, t := range tasks {
		for _, n := range t.Notifications {
			if !n.Read {
				notifications = append(notifications, n)
			}
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkNotificationsRead bulk-marks every notification on one task as read,
// scoped to the organization and the assignee. Returns the matched count
// (0 means absent, cross-tenant, or not the caller's task).
func (s *Store) MarkNotificationsRead(ctx context.Context, taskID, orgID, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": taskID, "organization_id": orgID, "assigned_to": userID},
		bson.M{"$set": bson.M{
			"notifications.$[].read": true,
			"updated_at":             time.Now().UTC(),
		}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
