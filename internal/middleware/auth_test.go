package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/middleware"
)

// AuthMiddlewareTestSuite is the test suite for the auth middleware.
type AuthMiddlewareTestSuite struct {
	suite.Suite
	tokens     *auth.TokenManager
	mw         *middleware.AuthMiddleware
	validToken string
}

// SetupTest runs before each test.
func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.tokens = auth.NewTokenManager("test-secret", time.Hour)
	s.mw = middleware.NewAuthMiddleware(s.tokens)

	token, err := s.tokens.Generate("user-1")
	s.Require().NoError(err)
	s.validToken = token
}

// serve runs a request through the middleware and returns the recorder plus
// the user id the inner handler saw.
func (s *AuthMiddlewareTestSuite) serve(r *http.Request) (*httptest.ResponseRecorder, string) {
	var seenUserID string
	handler := s.mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.UserIDFromContext(r.Context())
		s.Require().NoError(err)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec, seenUserID
}

// TestAuthenticate_BearerHeader tests the standard Authorization header path.
func (s *AuthMiddlewareTestSuite) TestAuthenticate_BearerHeader() {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	r.Header.Set("Authorization", "Bearer "+s.validToken)

	rec, userID := s.serve(r)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("user-1", userID)
}

// TestAuthenticate_QueryParam tests the WebSocket handshake fallback.
func (s *AuthMiddlewareTestSuite) TestAuthenticate_QueryParam() {
	r := httptest.NewRequest(http.MethodGet, "/ws?token="+s.validToken, nil)

	rec, userID := s.serve(r)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("user-1", userID)
}

// TestAuthenticate_MissingToken tests rejection before the handler runs.
func (s *AuthMiddlewareTestSuite) TestAuthenticate_MissingToken() {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)

	rec, userID := s.serve(r)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(userID)
}

// TestAuthenticate_InvalidToken tests rejection of tampered tokens.
func (s *AuthMiddlewareTestSuite) TestAuthenticate_InvalidToken() {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	r.Header.Set("Authorization", "Bearer "+s.validToken+"tampered")

	rec, userID := s.serve(r)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(userID)
}

// TestAuthenticate_WrongScheme tests that non-bearer schemes are ignored.
func (s *AuthMiddlewareTestSuite) TestAuthenticate_WrongScheme() {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rec, _ := s.serve(r)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

// TestUserIDFromContext_Missing tests the bare context case.
func (s *AuthMiddlewareTestSuite) TestUserIDFromContext_Missing() {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := middleware.UserIDFromContext(r.Context())
	s.Error(err)
}

// TestAuthMiddlewareTestSuite runs the test suite.
func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
