package service

import (
	"context"
	"time"

	"github.com/taskhive/taskhive/internal/domain"
)

// TaskStore is the durable store for tasks. Each operation is atomic on its
// own; the service performs no locking of its own, so two concurrent updates
// to the same task may interleave (last write wins per field group).
type TaskStore interface {
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, taskID string) error
	List(ctx context.Context, filters domain.TaskFilters, actorID string) ([]*domain.Task, error)
}

// ActivityStore is the append-only audit trail keyed by task.
type ActivityStore interface {
	Append(ctx context.Context, activity *domain.Activity) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.Activity, error)
}

// UserStore resolves user references.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}

// DashboardStore exposes the read-only aggregation queries for one user.
type DashboardStore interface {
	CountAssigned(ctx context.Context, userID string) (int, error)
	CountCreated(ctx context.Context, userID string) (int, error)
	OverdueTasks(ctx context.Context, userID string, now time.Time) ([]*domain.Task, error)
	CountByStatus(ctx context.Context, userID string) (map[domain.TaskStatus]int, error)
	CountByPriority(ctx context.Context, userID string) (map[domain.TaskPriority]int, error)
}

// Notifier delivers ephemeral events to live connections. Delivery is best
// effort; failures must never fail the originating operation.
type Notifier interface {
	BroadcastAll(event string, payload any)
	SendToUser(userID string, event string, payload any)
}
