package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskhive/taskhive/internal/domain"
)

// TaskService coordinates the task lifecycle: it validates mutations against
// persisted state, records every effective mutation in the activity trail,
// and emits realtime events strictly after the persisted write succeeds.
type TaskService struct {
	tasks      TaskStore
	activities ActivityStore
	users      UserStore
	notifier   Notifier
}

// NewTaskService creates a new TaskService. The notifier is an explicit
// dependency so tests can substitute a fake transport.
func NewTaskService(tasks TaskStore, activities ActivityStore, users UserStore, notifier Notifier) *TaskService {
	return &TaskService{
		tasks:      tasks,
		activities: activities,
		users:      users,
		notifier:   notifier,
	}
}

// CreateTaskParams holds the input for CreateTask.
type CreateTaskParams struct {
	Title        string
	Description  string
	DueDate      time.Time
	Priority     domain.TaskPriority
	AssignedToID *string
}

// TaskWithActivities pairs a task with its audit history, newest first.
type TaskWithActivities struct {
	Task       *domain.Task       `json:"task"`
	Activities []*domain.Activity `json:"activities"`
}

// CreateTask validates the input, persists a new task with the actor as its
// immutable creator, records a TASK_CREATED activity, and broadcasts the
// created task. If the task is assigned to someone other than the actor, that
// user also receives a targeted notification.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams, actorID string) (*domain.Task, error) {
	if err := validateCreate(params); err != nil {
		return nil, err
	}

	if params.AssignedToID != nil {
		if err := s.checkAssignee(ctx, *params.AssignedToID); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.Create(ctx, &domain.Task{
		Title:        params.Title,
		Description:  params.Description,
		DueDate:      params.DueDate,
		Priority:     params.Priority,
		Status:       domain.TaskStatusToDo,
		CreatorID:    actorID,
		AssignedToID: params.AssignedToID,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	err = s.activities.Append(ctx, &domain.Activity{
		TaskID:  task.ID,
		ActorID: actorID,
		Action:  domain.ActivityTaskCreated,
		Details: map[string]any{
			"title":      task.Title,
			"priority":   task.Priority,
			"assignedTo": task.AssignedToID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("append activity: %w", err)
	}

	s.notifier.BroadcastAll(domain.EventTaskCreated, task)
	if task.AssignedToID != nil && *task.AssignedToID != actorID {
		s.notifyAssigned(task, *task.AssignedToID)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"actor_id", actorID,
	)

	return task, nil
}

// UpdateTask applies the fields present in the patch to an existing task.
// Absent fields stay untouched; an explicit null clears the assignee. Changes
// to watched fields (title, status, assignedTo) are diffed against the
// pre-update snapshot and recorded as a single TASK_UPDATED activity.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, patch domain.TaskPatch, actorID string) (*domain.Task, error) {
	current, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if patch.AssignedToSet && patch.AssignedToID != nil {
		if err := s.checkAssignee(ctx, *patch.AssignedToID); err != nil {
			return nil, err
		}
	}

	updated, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		return nil, err
	}

	changes := diffWatched(current, patch)
	if len(changes) > 0 {
		err = s.activities.Append(ctx, &domain.Activity{
			TaskID:  taskID,
			ActorID: actorID,
			Action:  domain.ActivityTaskUpdated,
			Details: map[string]any{"changes": changes},
		})
		if err != nil {
			return nil, fmt.Errorf("append activity: %w", err)
		}
	}

	s.notifier.BroadcastAll(domain.EventTaskUpdated, updated)
	if assigneeChanged(current, patch) && patch.AssignedToID != nil && *patch.AssignedToID != actorID {
		s.notifyAssigned(updated, *patch.AssignedToID)
	}

	slog.Info("task updated",
		"task_id", taskID,
		"actor_id", actorID,
		"changed_fields", len(changes),
	)

	return updated, nil
}

// DeleteTask removes a task. Only the creator may delete; the store cascades
// the activity trail away with the task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string, actorID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !task.IsCreatedBy(actorID) {
		return domain.ErrNotTaskCreator
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.notifier.BroadcastAll(domain.EventTaskDeleted, domain.DeletedPayload{ID: taskID})

	slog.Info("task deleted",
		"task_id", taskID,
		"actor_id", actorID,
	)

	return nil
}

// GetTask returns a task together with its full activity history, newest first.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*TaskWithActivities, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activities.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return &TaskWithActivities{Task: task, Activities: activities}, nil
}

// ListTasks returns the tasks where the actor is creator or assignee, narrowed
// by the optional filters.
func (s *TaskService) ListTasks(ctx context.Context, filters domain.TaskFilters, actorID string) ([]*domain.Task, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, filters, actorID)
}

// checkAssignee verifies that an assignee reference resolves to a real user.
func (s *TaskService) checkAssignee(ctx context.Context, userID string) error {
	_, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrAssignedUserNotFound
		}
		return fmt.Errorf("resolve assignee: %w", err)
	}
	return nil
}

// notifyAssigned sends the targeted assignment notification to one user's
// private channel.
func (s *TaskService) notifyAssigned(task *domain.Task, userID string) {
	s.notifier.SendToUser(userID, domain.EventNotificationNew, domain.NotificationPayload{
		Type:    "TASK_ASSIGNED",
		Message: fmt.Sprintf("You've been assigned to %q", task.Title),
		TaskID:  task.ID,
	})
}

// diffWatched computes the field-level diff between the pre-update snapshot
// and the patch, restricted to the watched fields.
func diffWatched(current *domain.Task, patch domain.TaskPatch) map[string]domain.FieldChange {
	changes := make(map[string]domain.FieldChange)

	if patch.Title != nil && *patch.Title != current.Title {
		changes["title"] = domain.FieldChange{From: current.Title, To: *patch.Title}
	}
	if patch.Status != nil && *patch.Status != current.Status {
		changes["status"] = domain.FieldChange{From: current.Status, To: *patch.Status}
	}
	if assigneeChanged(current, patch) {
		changes["assignedTo"] = domain.FieldChange{
			From: derefOrNil(current.AssignedToID),
			To:   derefOrNil(patch.AssignedToID),
		}
	}

	return changes
}

func assigneeChanged(current *domain.Task, patch domain.TaskPatch) bool {
	if !patch.AssignedToSet {
		return false
	}
	switch {
	case patch.AssignedToID == nil && current.AssignedToID == nil:
		return false
	case patch.AssignedToID == nil || current.AssignedToID == nil:
		return true
	default:
		return *patch.AssignedToID != *current.AssignedToID
	}
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
