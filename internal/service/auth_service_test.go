package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/service"
)

// AuthServiceTestSuite is the test suite for AuthService.
type AuthServiceTestSuite struct {
	suite.Suite
	users       *fakeUserStore
	tokens      *auth.TokenManager
	authService *service.AuthService
}

// SetupTest runs before each test.
func (s *AuthServiceTestSuite) SetupTest() {
	s.users = newFakeUserStore()
	s.tokens = auth.NewTokenManager("test-secret", time.Hour)
	s.authService = service.NewAuthService(s.users, s.tokens)
}

// TestRegister_Success tests the full register flow.
func (s *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()

	result, err := s.authService.Register(ctx, service.RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Name:     "Alice",
	})
	s.Require().NoError(err)
	s.NotEmpty(result.User.ID)
	s.Equal("alice@example.com", result.User.Email)
	s.NotEmpty(result.Token)

	// The issued token resolves back to the new user
	userID, err := s.tokens.Validate(result.Token)
	s.Require().NoError(err)
	s.Equal(result.User.ID, userID)

	// The stored hash is not the plaintext password
	stored, err := s.users.GetByEmail(ctx, "alice@example.com")
	s.Require().NoError(err)
	s.NotEqual("correct horse battery", stored.PasswordHash)
}

// TestRegister_EmailTaken tests the duplicate email check.
func (s *AuthServiceTestSuite) TestRegister_EmailTaken() {
	ctx := context.Background()
	s.users.addUser("user-1", "alice@example.com", "Alice")

	_, err := s.authService.Register(ctx, service.RegisterParams{
		Email:    "alice@example.com",
		Password: "another password",
		Name:     "Second Alice",
	})
	s.ErrorIs(err, domain.ErrEmailTaken)
}

// TestLogin_Success tests the register/login roundtrip.
func (s *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()

	registered, err := s.authService.Register(ctx, service.RegisterParams{
		Email:    "bob@example.com",
		Password: "swordfish123",
		Name:     "Bob",
	})
	s.Require().NoError(err)

	result, err := s.authService.Login(ctx, "bob@example.com", "swordfish123")
	s.Require().NoError(err)
	s.Equal(registered.User.ID, result.User.ID)
	s.NotEmpty(result.Token)
}

// TestLogin_InvalidCredentials tests that unknown email and wrong password
// return the same error.
func (s *AuthServiceTestSuite) TestLogin_InvalidCredentials() {
	ctx := context.Background()

	_, err := s.authService.Register(ctx, service.RegisterParams{
		Email:    "bob@example.com",
		Password: "swordfish123",
		Name:     "Bob",
	})
	s.Require().NoError(err)

	_, err = s.authService.Login(ctx, "bob@example.com", "wrong password")
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.authService.Login(ctx, "nobody@example.com", "swordfish123")
	s.ErrorIs(err, domain.ErrInvalidCredentials)
}

// TestProfile tests actor resolution.
func (s *AuthServiceTestSuite) TestProfile() {
	ctx := context.Background()
	s.users.addUser("user-1", "alice@example.com", "Alice")

	user, err := s.authService.Profile(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("Alice", user.Name)

	_, err = s.authService.Profile(ctx, "missing")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

// TestListUsers tests the assignee picker listing.
func (s *AuthServiceTestSuite) TestListUsers() {
	ctx := context.Background()
	s.users.addUser("user-1", "bob@example.com", "Bob")
	s.users.addUser("user-2", "alice@example.com", "Alice")

	users, err := s.authService.ListUsers(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("Alice", users[0].Name)
	s.Equal("Bob", users[1].Name)
}

// TestAuthServiceTestSuite runs the test suite.
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
