package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Not-found errors
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")

	// Permission errors
	ErrNotTaskCreator = errors.New("unauthorized to delete this task")

	// Validation errors
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleTooLong         = errors.New("title must be less than 100 characters")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrDueDateRequired      = errors.New("due date is required")
	ErrInvalidDueDate       = errors.New("invalid date format")
	ErrInvalidPriority      = errors.New("invalid task priority")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrInvalidSort          = errors.New("invalid sort field")
	ErrInvalidFilter        = errors.New("invalid assignedTo filter")
	ErrAssignedUserNotFound = errors.New("assigned user not found")

	// Auth errors
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid authentication token")
)
