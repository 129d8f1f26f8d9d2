package dto

import (
	"encoding/json"
	"time"

	"github.com/taskhive/taskhive/internal/domain"
)

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DueDate      string  `json:"dueDate"`
	Priority     string  `json:"priority"`
	AssignedToID *string `json:"assignedToId,omitempty"`
}

// OptionalString distinguishes an absent JSON field from an explicit null.
// Absent means "leave untouched"; null means "clear".
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked when the field is present, so Set records
// presence and Value keeps the null/value distinction.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// UpdateTaskRequest represents the request body for PUT /tasks/{id}. Pointer
// fields absent from the body stay untouched.
type UpdateTaskRequest struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	DueDate      *string        `json:"dueDate"`
	Priority     *string        `json:"priority"`
	Status       *string        `json:"status"`
	AssignedToID OptionalString `json:"assignedToId"`
}

// ToPatch converts the request into a domain patch, parsing the due date.
func (r UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}

	if r.DueDate != nil {
		due, err := ParseDueDate(*r.DueDate)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.DueDate = &due
	}
	if r.Priority != nil {
		p := domain.TaskPriority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.TaskStatus(*r.Status)
		patch.Status = &s
	}
	if r.AssignedToID.Set {
		patch.AssignedToSet = true
		patch.AssignedToID = r.AssignedToID.Value
	}

	return patch, nil
}

// dueDateLayouts are the accepted due date formats, tried in order.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDueDate parses a due date string into a valid instant.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrInvalidDueDate
}

// RegisterRequest represents the request body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListTasksQuery represents the query parameters for GET /tasks.
type ListTasksQuery struct {
	Status     string // ?status=InProgress
	Priority   string // ?priority=Urgent
	AssignedTo string // ?assignedTo=me|others
	SortBy     string // ?sortBy=dueDate|priority|createdAt
	SortOrder  string // ?sortOrder=asc|desc
}

// ToFilters converts the query into domain filters. Unknown values are kept
// and rejected by the service's validation.
func (q ListTasksQuery) ToFilters() domain.TaskFilters {
	var filters domain.TaskFilters

	if q.Status != "" {
		s := domain.TaskStatus(q.Status)
		filters.Status = &s
	}
	if q.Priority != "" {
		p := domain.TaskPriority(q.Priority)
		filters.Priority = &p
	}
	if q.AssignedTo != "" {
		a := domain.AssignedToFilter(q.AssignedTo)
		filters.AssignedTo = &a
	}
	filters.SortBy = domain.TaskSortField(q.SortBy)
	filters.SortDesc = q.SortOrder == "desc"

	return filters
}
