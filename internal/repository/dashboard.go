package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/taskhive/taskhive/internal/domain"
)

// CountAssigned counts tasks currently assigned to the user.
func (r *TaskRepository) CountAssigned(ctx context.Context, userID string) (int, error) {
	return r.countWhere(ctx, sq.Eq{"assigned_to_id": userID})
}

// CountCreated counts tasks created by the user.
func (r *TaskRepository) CountCreated(ctx context.Context, userID string) (int, error) {
	return r.countWhere(ctx, sq.Eq{"creator_id": userID})
}

func (r *TaskRepository) countWhere(ctx context.Context, pred any) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("tasks").Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

// OverdueTasks retrieves tasks assigned to the user whose due date is strictly
// in the past and that are not yet completed, ordered by due date ascending.
func (r *TaskRepository) OverdueTasks(ctx context.Context, userID string, now time.Time) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"assigned_to_id": userID}).
		Where(sq.Lt{"due_date": now}).
		Where(sq.NotEq{"status": domain.TaskStatusCompleted}).
		OrderBy("due_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build OverdueTasks query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query overdue tasks: %w", err)
	}

	return scanTasks(rows)
}

// CountByStatus groups the user's tasks (as creator or assignee) by status.
func (r *TaskRepository) CountByStatus(ctx context.Context, userID string) (map[domain.TaskStatus]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM tasks
		WHERE creator_id = $1 OR assigned_to_id = $1
		GROUP BY status
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query tasks by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var status domain.TaskStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}

	return counts, nil
}

// CountByPriority groups the user's tasks (as creator or assignee) by priority.
func (r *TaskRepository) CountByPriority(ctx context.Context, userID string) (map[domain.TaskPriority]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT priority, COUNT(*)
		FROM tasks
		WHERE creator_id = $1 OR assigned_to_id = $1
		GROUP BY priority
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query tasks by priority: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TaskPriority]int)
	for rows.Next() {
		var priority domain.TaskPriority
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, fmt.Errorf("scan priority count: %w", err)
		}
		counts[priority] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate priority rows: %w", err)
	}

	return counts, nil
}
