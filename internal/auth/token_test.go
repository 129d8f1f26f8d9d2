package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/domain"
)

// TokenManagerTestSuite is the test suite for TokenManager.
type TokenManagerTestSuite struct {
	suite.Suite
	tokens *auth.TokenManager
}

// SetupTest runs before each test.
func (s *TokenManagerTestSuite) SetupTest() {
	s.tokens = auth.NewTokenManager("test-secret", time.Hour)
}

// TestGenerateValidate_Roundtrip tests that an issued token resolves to its user.
func (s *TokenManagerTestSuite) TestGenerateValidate_Roundtrip() {
	token, err := s.tokens.Generate("user-1")
	s.Require().NoError(err)
	s.NotEmpty(token)

	userID, err := s.tokens.Validate(token)
	s.Require().NoError(err)
	s.Equal("user-1", userID)
}

// TestValidate_Garbage tests rejection of malformed tokens.
func (s *TokenManagerTestSuite) TestValidate_Garbage() {
	_, err := s.tokens.Validate("not-a-token")
	s.ErrorIs(err, domain.ErrInvalidToken)

	_, err = s.tokens.Validate("")
	s.ErrorIs(err, domain.ErrInvalidToken)
}

// TestValidate_WrongSecret tests rejection of tokens signed with another key.
func (s *TokenManagerTestSuite) TestValidate_WrongSecret() {
	other := auth.NewTokenManager("different-secret", time.Hour)
	token, err := other.Generate("user-1")
	s.Require().NoError(err)

	_, err = s.tokens.Validate(token)
	s.ErrorIs(err, domain.ErrInvalidToken)
}

// TestValidate_Expired tests rejection of expired tokens.
func (s *TokenManagerTestSuite) TestValidate_Expired() {
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Generate("user-1")
	s.Require().NoError(err)

	_, err = s.tokens.Validate(token)
	s.ErrorIs(err, domain.ErrInvalidToken)
}

// TestTokenManagerTestSuite runs the test suite.
func TestTokenManagerTestSuite(t *testing.T) {
	suite.Run(t, new(TokenManagerTestSuite))
}
