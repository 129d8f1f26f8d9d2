package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/handler/dto"
	"github.com/taskhive/taskhive/internal/service"
)

// handleCreateTask creates a new task with the actor as creator.
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	dueDate, err := dto.ParseDueDate(req.DueDate)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	task, err := h.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      dueDate,
		Priority:     domain.TaskPriority(req.Priority),
		AssignedToID: req.AssignedToID,
	}, actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleGetTask retrieves a task with its activity history.
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := actorID(w, r); !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	detail, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := dto.TaskDetailResponse{
		Task:       dto.ToTaskResponse(detail.Task),
		Activities: make([]dto.ActivityResponse, len(detail.Activities)),
	}
	for i, activity := range detail.Activities {
		response.Activities[i] = dto.ToActivityResponse(activity)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleUpdateTask applies a partial update to a task.
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, patch, actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleDeleteTask removes a task; only its creator may do so.
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(ctx, taskID, actor); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": taskID})
}

// handleListTasks lists the tasks visible to the actor.
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	query := dto.ListTasksQuery{
		Status:     r.URL.Query().Get("status"),
		Priority:   r.URL.Query().Get("priority"),
		AssignedTo: r.URL.Query().Get("assignedTo"),
		SortBy:     r.URL.Query().Get("sortBy"),
		SortOrder:  r.URL.Query().Get("sortOrder"),
	}

	tasks, err := h.taskService.ListTasks(ctx, query.ToFilters(), actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks: dto.ToTaskResponses(tasks),
		Total: len(tasks),
	})
}

// handleDashboard returns the actor's summary view.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(ctx, actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := dto.DashboardResponse{
		TotalAssigned:   dashboard.TotalAssigned,
		TotalCreated:    dashboard.TotalCreated,
		OverdueTasks:    dto.ToTaskResponses(dashboard.OverdueTasks),
		TasksByStatus:   make(map[string]int, len(dashboard.TasksByStatus)),
		TasksByPriority: make(map[string]int, len(dashboard.TasksByPriority)),
	}
	for status, count := range dashboard.TasksByStatus {
		response.TasksByStatus[string(status)] = count
	}
	for priority, count := range dashboard.TasksByPriority {
		response.TasksByPriority[string(priority)] = count
	}

	respondJSON(w, http.StatusOK, response)
}
