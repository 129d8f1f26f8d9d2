package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/handler/dto"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/realtime"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool             *pgxpool.Pool
	hub              *realtime.Hub
	tokens           *auth.TokenManager
	taskService      *service.TaskService
	dashboardService *service.DashboardService
	authService      *service.AuthService
	authMiddleware   *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies. The hub is passed
// in from main; the services receive it through their notifier dependency.
func New(pool *pgxpool.Pool, hub *realtime.Hub, tokens *auth.TokenManager) *Handler {
	taskRepo := repository.NewTaskRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	taskService := service.NewTaskService(taskRepo, activityRepo, userRepo, hub)
	dashboardService := service.NewDashboardService(taskRepo)
	authService := service.NewAuthService(userRepo, tokens)

	return &Handler{
		pool:             pool,
		hub:              hub,
		tokens:           tokens,
		taskService:      taskService,
		dashboardService: dashboardService,
		authService:      authService,
		authMiddleware:   middleware.NewAuthMiddleware(tokens),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	mux.Handle("GET /api/v1/auth/me", h.authed(h.handleProfile))

	// Tasks
	mux.Handle("GET /api/v1/tasks", h.authed(h.handleListTasks))
	mux.Handle("POST /api/v1/tasks", h.authed(h.handleCreateTask))
	mux.Handle("GET /api/v1/tasks/{id}", h.authed(h.handleGetTask))
	mux.Handle("PUT /api/v1/tasks/{id}", h.authed(h.handleUpdateTask))
	mux.Handle("DELETE /api/v1/tasks/{id}", h.authed(h.handleDeleteTask))

	// Dashboard and users
	mux.Handle("GET /api/v1/dashboard", h.authed(h.handleDashboard))
	mux.Handle("GET /api/v1/users", h.authed(h.handleListUsers))

	// Live connection transport
	mux.Handle("GET /ws", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleWebSocket)))
}

func (h *Handler) authed(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes the response.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractTaskID extracts and validates the task ID from the path parameter.
// Returns (taskID, true) if valid, ("", false) if invalid (error already sent
// to the client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id is required")
		return "", false
	}

	if _, err := uuid.Parse(taskID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id must be a valid UUID")
		return "", false
	}

	return taskID, true
}

// actorID extracts the authenticated actor from the request context. Returns
// ("", false) with the response already written when authentication is
// missing.
func actorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return "", false
	}
	return userID, true
}
