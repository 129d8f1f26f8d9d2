package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthService handles account registration and credential checks. Task
// operations never see credentials; they receive an already-authenticated
// actor identity.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterParams holds the input for Register.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
}

// AuthResult pairs a user with a freshly issued token.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	_, err := s.users.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. It does not reveal whether
// the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Profile returns the account behind an actor id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ListUsers returns every registered user, for assignee pickers.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}
