package service

import (
	"time"

	"github.com/taskhive/taskhive/internal/domain"
)

const maxTitleLength = 100

// validateCreate checks the semantic constraints on task creation input.
func validateCreate(params CreateTaskParams) error {
	if params.Title == "" {
		return domain.ErrTitleRequired
	}
	if len(params.Title) > maxTitleLength {
		return domain.ErrTitleTooLong
	}
	if params.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if params.DueDate.IsZero() {
		return domain.ErrDueDateRequired
	}
	if !params.Priority.IsValid() {
		return domain.ErrInvalidPriority
	}
	return nil
}

// validatePatch checks the fields actually present in a partial update.
// Absent fields are not validated; they stay untouched.
func validatePatch(patch domain.TaskPatch) error {
	if patch.Title != nil {
		if *patch.Title == "" {
			return domain.ErrTitleRequired
		}
		if len(*patch.Title) > maxTitleLength {
			return domain.ErrTitleTooLong
		}
	}
	if patch.DueDate != nil && patch.DueDate.Equal(time.Time{}) {
		return domain.ErrInvalidDueDate
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return domain.ErrInvalidPriority
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

// validateFilters checks the optional list filters.
func validateFilters(filters domain.TaskFilters) error {
	if filters.Status != nil && !filters.Status.IsValid() {
		return domain.ErrInvalidStatus
	}
	if filters.Priority != nil && !filters.Priority.IsValid() {
		return domain.ErrInvalidPriority
	}
	if filters.AssignedTo != nil && !filters.AssignedTo.IsValid() {
		return domain.ErrInvalidFilter
	}
	if filters.SortBy != "" && !filters.SortBy.IsValid() {
		return domain.ErrInvalidSort
	}
	return nil
}
