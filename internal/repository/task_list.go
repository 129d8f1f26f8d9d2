package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/taskhive/taskhive/internal/domain"
)

// priorityOrder ranks priorities for ORDER BY since they are stored as text.
const priorityOrder = "CASE priority WHEN 'Urgent' THEN 1 WHEN 'High' THEN 2 WHEN 'Medium' THEN 3 WHEN 'Low' THEN 4 END"

// List retrieves tasks visible to the actor (creator or assignee), applying
// the optional filters and sort. The assignedTo filter is resolved against
// the actor, not a literal user id.
func (r *TaskRepository) List(ctx context.Context, filters domain.TaskFilters, actorID string) ([]*domain.Task, error) {
	qb := psql.Select(taskColumns...).From("tasks").
		Where(sq.Or{
			sq.Eq{"creator_id": actorID},
			sq.Eq{"assigned_to_id": actorID},
		})

	if filters.Status != nil {
		qb = qb.Where(sq.Eq{"status": *filters.Status})
	}
	if filters.Priority != nil {
		qb = qb.Where(sq.Eq{"priority": *filters.Priority})
	}
	if filters.AssignedTo != nil {
		switch *filters.AssignedTo {
		case domain.AssignedToMe:
			qb = qb.Where(sq.Eq{"assigned_to_id": actorID})
		case domain.AssignedToOthers:
			qb = qb.Where(sq.And{
				sq.NotEq{"assigned_to_id": nil},
				sq.NotEq{"assigned_to_id": actorID},
			})
		}
	}

	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}
	switch filters.SortBy {
	case domain.TaskSortPriority:
		qb = qb.OrderBy(priorityOrder + " " + direction)
	case domain.TaskSortCreatedAt:
		qb = qb.OrderBy("created_at " + direction)
	default:
		qb = qb.OrderBy("due_date " + direction)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return scanTasks(rows)
}
