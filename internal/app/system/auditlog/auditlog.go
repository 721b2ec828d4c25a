// internal/app/system/auditlog/auditlog.go
package auditlog

import (
	"context"
	"net/http"
	"time"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Event categories.
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Event types.
const (
	EventLoginSuccess   = "login_success"
	EventLoginFailed    = "login_failed"
	EventUserRegistered = "user_registered"
	EventInvitationSent = "invitation_sent"
	EventRoleChanged    = "role_changed"
	EventUserRemoved    = "user_removed"
)

// Event is a single audit record.
type Event struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Category       string              `bson:"category" json:"category"`
	EventType      string              `bson:"event_type" json:"event_type"`
	ActorID        *primitive.ObjectID `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	TargetID       *primitive.ObjectID `bson:"target_id,omitempty" json:"target_id,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	IP             string              `bson:"ip,omitempty" json:"ip,omitempty"`
	Success        bool                `bson:"success" json:"success"`
	FailureReason  string              `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	Details        map[string]string   `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
}

// Config selects destinations per category.
// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off".
type Config struct {
	Auth  string
	Admin string
}

// Logger records audit events to an audit_events collection and to zap.
// A nil *Logger is a valid no-op, so handlers never have to check.
type Logger struct {
	c      *mongo.Collection
	zapLog *zap.Logger
	config Config
}

// New creates a Logger backed by the audit_events collection of db.
func New(db *mongo.Database, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		c:      db.Collection("audit_events"),
		zapLog: zapLog,
		config: config,
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TargetID != nil {
		fields = append(fields, zap.String("target_id", event.TargetID.Hex()))
	}
	if event.OrganizationID != nil {
		fields = append(fields, zap.String("organization_id", event.OrganizationID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an event according to the category's configured destination.
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case CategoryAuth:
		setting = l.config.Auth
	case CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if _, err := l.c.InsertOne(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

// Filter narrows a Recent query. Zero-value fields are ignored.
type Filter struct {
	OrganizationID primitive.ObjectID
	Category       string
	EventType      string
}

// Recent returns one page of audit events, newest first, along with a flag
// indicating whether more pages exist. Pages are 1-based.
func (l *Logger) Recent(ctx context.Context, f Filter, page int) ([]Event, bool, error) {
	if page < 1 {
		page = 1
	}

	query := bson.M{}
	if !f.OrganizationID.IsZero() {
		query["organization_id"] = f.OrganizationID
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.EventType != "" {
		query["event_type"] = f.EventType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(paging.Skip(page)).
		SetLimit(paging.LimitPlusOne())

	cur, err := l.c.Find(ctx, query, opts)
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	events := make([]Event, 0, paging.PageSize)
	if err := cur.All(ctx, &events); err != nil {
		return nil, false, err
	}
	hasNext := paging.TrimPage(&events)
	return events, hasNext, nil
}

// LoginSuccess records a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, orgID primitive.ObjectID) {
	l.Log(ctx, Event{
		Category:       CategoryAuth,
		EventType:      EventLoginSuccess,
		ActorID:        &userID,
		OrganizationID: &orgID,
		IP:             clientIP(r),
		Success:        true,
	})
}

// LoginFailed records a rejected login attempt. The attempted email goes in
// details rather than actor_id so unknown accounts still leave a trail.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, Event{
		Category:      CategoryAuth,
		EventType:     EventLoginFailed,
		IP:            clientIP(r),
		Success:       false,
		FailureReason: reason,
		Details:       map[string]string{"email": email},
	})
}

// UserRegistered records a new account, either via invitation or as the
// founding admin of a new organization.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID, orgID primitive.ObjectID, role string) {
	l.Log(ctx, Event{
		Category:       CategoryAuth,
		EventType:      EventUserRegistered,
		ActorID:        &userID,
		OrganizationID: &orgID,
		IP:             clientIP(r),
		Success:        true,
		Details:        map[string]string{"role": role},
	})
}

// InvitationSent records that an invitation was issued.
func (l *Logger) InvitationSent(ctx context.Context, r *http.Request, actorID, orgID primitive.ObjectID, email, role string) {
	l.Log(ctx, Event{
		Category:       CategoryAdmin,
		EventType:      EventInvitationSent,
		ActorID:        &actorID,
		OrganizationID: &orgID,
		IP:             clientIP(r),
		Success:        true,
		Details:        map[string]string{"email": email, "role": role},
	})
}

// RoleChanged records an admin changing another member's role.
func (l *Logger) RoleChanged(ctx context.Context, r *http.Request, actorID, targetID, orgID primitive.ObjectID, newRole string) {
	l.Log(ctx, Event{
		Category:       CategoryAdmin,
		EventType:      EventRoleChanged,
		ActorID:        &actorID,
		TargetID:       &targetID,
		OrganizationID: &orgID,
		IP:             clientIP(r),
		Success:        true,
		Details:        map[string]string{"new_role": newRole},
	})
}

// UserRemoved records an admin deactivating a member.
func (l *Logger) UserRemoved(ctx context.Context, r *http.Request, actorID, targetID, orgID primitive.ObjectID) {
	l.Log(ctx, Event{
		Category:       CategoryAdmin,
		EventType:      EventUserRemoved,
		ActorID:        &actorID,
		TargetID:       &targetID,
		OrganizationID: &orgID,
		IP:             clientIP(r),
		Success:        true,
	})
}
