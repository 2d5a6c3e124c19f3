package service

import (
	"context"
	"testing"
	"time"

	"quizmoa/internal/config"
	"quizmoa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret-key-for-signing-jwts",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		GoogleOAuth: config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8090/api/auth/google/callback",
		},
	}
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = ""

	svc, err := NewAuthService(new(MockUserRepository), cfg)
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestGetGoogleLoginURL(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	assert.NoError(t, err)

	url := svc.GetGoogleLoginURL("state-123")
	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "client_id=client-id")
}

func TestCreateAndValidateJWT(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	assert.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), "user-1", 15*time.Minute, tokenTypeAccess)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestValidateJWT_RejectsGarbage(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	assert.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), "not-a-jwt")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateJWT_RejectsExpired(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	assert.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), "user-1", -time.Minute, tokenTypeAccess)
	assert.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	users := new(MockUserRepository)
	svc, err := NewAuthService(users, testAuthConfig())
	assert.NoError(t, err)

	users.On("GetUserByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	refresh, err := svc.CreateJWT(context.Background(), "user-1", time.Hour, tokenTypeRefresh)
	assert.NoError(t, err)

	tokens, err := svc.RefreshToken(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	assert.NoError(t, err)

	access, err := svc.CreateJWT(context.Background(), "user-1", time.Hour, tokenTypeAccess)
	assert.NoError(t, err)

	tokens, err := svc.RefreshToken(context.Background(), access)
	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestRefreshToken_RejectsDeletedUser(t *testing.T) {
	users := new(MockUserRepository)
	svc, err := NewAuthService(users, testAuthConfig())
	assert.NoError(t, err)

	users.On("GetUserByID", mock.Anything, "gone").Return(nil, nil)

	refresh, err := svc.CreateJWT(context.Background(), "gone", time.Hour, tokenTypeRefresh)
	assert.NoError(t, err)

	tokens, err := svc.RefreshToken(context.Background(), refresh)
	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestHandleGoogleCallback_StateMismatch(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	assert.NoError(t, err)

	tokens, user, err := svc.HandleGoogleCallback(context.Background(), "code", "state-a", "state-b")
	assert.Nil(t, tokens)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}
