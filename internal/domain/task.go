package domain

import "time"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "ToDo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusReview     TaskStatus = "Review"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

// Task represents a unit of work tracked by the system.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DueDate      time.Time    `json:"dueDate"`
	Priority     TaskPriority `json:"priority"`
	Status       TaskStatus   `json:"status"`
	CreatorID    string       `json:"creatorId"`
	AssignedToID *string      `json:"assignedToId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// IsCreatedBy checks if the task was created by the given user.
func (t *Task) IsCreatedBy(userID string) bool {
	return t.CreatorID == userID
}

// IsAssignedTo checks if the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}

// IsOverdue reports whether the task's due date has passed and the task
// is still open.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// TaskSortField is a field the task list can be ordered by.
type TaskSortField string

const (
	TaskSortDueDate   TaskSortField = "dueDate"
	TaskSortPriority  TaskSortField = "priority"
	TaskSortCreatedAt TaskSortField = "createdAt"
)

// IsValid checks if the sort field is one of the allowed values.
func (f TaskSortField) IsValid() bool {
	switch f {
	case TaskSortDueDate, TaskSortPriority, TaskSortCreatedAt:
		return true
	default:
		return false
	}
}

// AssignedToFilter narrows a task list by assignment relative to the actor.
type AssignedToFilter string

const (
	AssignedToMe     AssignedToFilter = "me"
	AssignedToOthers AssignedToFilter = "others"
)

// IsValid checks if the filter is one of the allowed values.
func (f AssignedToFilter) IsValid() bool {
	return f == AssignedToMe || f == AssignedToOthers
}

// TaskFilters holds the supported filters for task listing. All filters are
// optional; the actor scoping (creator or assignee) is always applied.
type TaskFilters struct {
	Status     *TaskStatus
	Priority   *TaskPriority
	AssignedTo *AssignedToFilter
	SortBy     TaskSortField // default: TaskSortDueDate
	SortDesc   bool
}

// TaskPatch carries a partial update. Nil fields are left untouched. The
// assignee uses an explicit Set flag so a JSON null can clear it.
type TaskPatch struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	Priority      *TaskPriority
	Status        *TaskStatus
	AssignedToID  *string
	AssignedToSet bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Status == nil && !p.AssignedToSet
}
