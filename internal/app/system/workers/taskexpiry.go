// internal/app/system/workers/taskexpiry.go
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	taskstore "github.com/GodishalaAshwith/taskhub/internal/app/store/tasks"
	"github.com/GodishalaAshwith/taskhub/internal/app/system/timeouts"
	"github.com/GodishalaAshwith/taskhub/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultSweepInterval matches the original hourly schedule.
const DefaultSweepInterval = time.Hour

// TaskExpiry is the background worker that transitions overdue tasks to
// Expired and appends an expiry notification. It runs independently of
// request traffic and is not mutually exclusive with request handlers
// touching the same tasks; last write wins.
type TaskExpiry struct {
	tasks    *taskstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewTaskExpiry creates the expiry worker. If interval is zero or negative,
// DefaultSweepInterval is used.
func NewTaskExpiry(tasks *taskstore.Store, logger *zap.Logger, interval time.Duration) *TaskExpiry {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &TaskExpiry{
		tasks:    tasks,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *TaskExpiry) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("task expiry worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *TaskExpiry) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("task expiry worker stopped")
}

func (w *TaskExpiry) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
			w.Sweep(ctx)
			cancel()
		}
	}
}

// Sweep runs one expiry pass: every task past its due date and not yet
// Expired is marked Expired with a new unread notification. Tasks are saved
// individually; a failure on one is logged and does not abort the rest.
// Re-running is idempotent since expired tasks are excluded from the query.
func (w *TaskExpiry) Sweep(ctx context.Context) {
	now := time.Now().UTC()

	overdue, err := w.tasks.FindOverdue(ctx, now)
	if err != nil {
		w.log.Error("expiry sweep: finding overdue tasks failed", zap.Error(err))
		return
	}

	expired := 0
	for _, t := range overdue {
		n := models.Notification{
			Message:   fmt.Sprintf("Task \"%s\" has expired", t.Title),
			CreatedAt: now,
			Read:      false,
		}
		count, err := w.tasks.Expire(ctx, t.ID, n)
		if err != nil {
			w.log.Error("expiry sweep: expiring task failed",
				zap.String("task_id", t.ID.Hex()),
				zap.Error(err))
			continue
		}
		expired += int(count)
	}

	w.log.Info("checked for expired tasks",
		zap.Int("overdue", len(overdue)),
		zap.Int("expired", expired))
}
