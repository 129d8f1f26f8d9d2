package dto

import (
	"time"

	"github.com/taskhive/taskhive/internal/domain"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	CreatorID    string    `json:"creatorId"`
	AssignedToID *string   `json:"assignedToId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ActivityResponse represents an audit record in API responses.
type ActivityResponse struct {
	ID        string         `json:"id"`
	TaskID    string         `json:"taskId"`
	UserID    string         `json:"userId"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TaskDetailResponse represents the response for GET /tasks/{id}.
type TaskDetailResponse struct {
	Task       TaskResponse       `json:"task"`
	Activities []ActivityResponse `json:"activities"`
}

// UserResponse represents a user in API responses. No credential material.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse represents the response for register/login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// DashboardResponse represents the response for GET /dashboard.
type DashboardResponse struct {
	TotalAssigned   int            `json:"totalAssigned"`
	TotalCreated    int            `json:"totalCreated"`
	OverdueTasks    []TaskResponse `json:"overdueTasks"`
	TasksByStatus   map[string]int `json:"tasksByStatus"`
	TasksByPriority map[string]int `json:"tasksByPriority"`
}

// ToTaskResponse converts a domain.Task to its API shape.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		DueDate:      task.DueDate,
		Priority:     string(task.Priority),
		Status:       string(task.Status),
		CreatorID:    task.CreatorID,
		AssignedToID: task.AssignedToID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks, never returning nil.
func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task)
	}
	return out
}

// ToActivityResponse converts a domain.Activity to its API shape.
func ToActivityResponse(activity *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        activity.ID,
		TaskID:    activity.TaskID,
		UserID:    activity.ActorID,
		Action:    string(activity.Action),
		Details:   activity.Details,
		CreatedAt: activity.CreatedAt,
	}
}

// ToUserResponse converts a domain.User to its API shape.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
