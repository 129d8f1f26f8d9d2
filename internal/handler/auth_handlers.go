package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive/internal/handler/dto"
	"github.com/taskhive/taskhive/internal/service"
)

// handleRegister creates a new account and returns a token for it.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "password must be at least 8 characters")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}

	result, err := h.authService.Register(ctx, service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AuthResponse{
		User:  dto.ToUserResponse(result.User),
		Token: result.Token,
	})
}

// handleLogin verifies credentials and returns a fresh token.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserResponse(result.User),
		Token: result.Token,
	})
}

// handleProfile returns the authenticated user's account.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Profile(ctx, actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleListUsers returns all registered users for assignee pickers.
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := actorID(w, r); !ok {
		return
	}

	users, err := h.authService.ListUsers(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i, user := range users {
		response[i] = dto.ToUserResponse(user)
	}

	respondJSON(w, http.StatusOK, response)
}
