package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskhive/taskhive/internal/domain"
)

// ActivityRepository handles database operations for activity records.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Append inserts a new activity record. Records are append-only; there is no
// update or single-row delete path.
func (r *ActivityRepository) Append(ctx context.Context, activity *domain.Activity) error {
	details, err := json.Marshal(activity.Details)
	if err != nil {
		return fmt.Errorf("marshal activity details: %w", err)
	}

	query, args, err := psql.
		Insert("activities").
		Columns("task_id", "actor_id", "action", "details").
		Values(activity.TaskID, activity.ActorID, activity.Action, details).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Append query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	return nil
}

// ListByTask retrieves all activities for a task, newest first.
func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Activity, error) {
	query, args, err := psql.
		Select("id", "task_id", "actor_id", "action", "details", "created_at").
		From("activities").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var activity domain.Activity
		var details []byte
		err := rows.Scan(
			&activity.ID,
			&activity.TaskID,
			&activity.ActorID,
			&activity.Action,
			&details,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if err := json.Unmarshal(details, &activity.Details); err != nil {
			return nil, fmt.Errorf("parse activity details: %w", err)
		}
		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return activities, nil
}
