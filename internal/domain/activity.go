package domain

import "time"

// ActivityAction represents the kind of mutation an activity records.
type ActivityAction string

const (
	ActivityTaskCreated ActivityAction = "TASK_CREATED"
	ActivityTaskUpdated ActivityAction = "TASK_UPDATED"
)

// FieldChange records a single watched field changing value.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Activity is an append-only audit record describing one mutation of a task.
// Activities are never updated or deleted individually; they are removed only
// as a cascade when their task is deleted.
type Activity struct {
	ID        string         `json:"id"`
	TaskID    string         `json:"taskId"`
	ActorID   string         `json:"userId"`
	Action    ActivityAction `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}
