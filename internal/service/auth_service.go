package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizmoa/internal/config"
	"quizmoa/internal/domain"
	"quizmoa/internal/dto"
	"quizmoa/internal/logger"
	"quizmoa/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *domain.User, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
}

type authService struct {
	users        domain.UserRepository
	oauth2Config *oauth2.Config
	jwtConfig    config.JWTConfig
}

// NewAuthService creates a new instance of authService.
func NewAuthService(users domain.UserRepository, cfg *config.Config) (AuthService, error) {
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authService{
		users: users,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleOAuth.ClientID,
			ClientSecret: cfg.GoogleOAuth.ClientSecret,
			RedirectURL:  cfg.GoogleOAuth.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		jwtConfig: cfg.JWT,
	}, nil
}

func (s *authService) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *authService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *domain.User, error) {
	if receivedState != expectedState {
		return nil, nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return nil, nil, errors.New("google user info is incomplete")
	}

	user, err := s.users.GetUserByGoogleID(ctx, userInfo.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching user by google_id: %w", err)
	}

	if user == nil {
		user = &domain.User{
			ID:              util.NewULID(),
			GoogleID:        userInfo.ID,
			Email:           userInfo.Email,
			Name:            userInfo.Name,
			ProfileImageURL: userInfo.Picture,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("failed to create user: %w", err)
		}
		logger.Get().Info("Registered new user", zap.String("userID", user.ID))
	} else {
		user.Email = userInfo.Email
		user.Name = userInfo.Name
		user.ProfileImageURL = userInfo.Picture
		if err := s.users.UpdateUser(ctx, user); err != nil {
			logger.Get().Warn("Failed to refresh user profile from google", zap.Error(err), zap.String("userID", user.ID))
		}
	}

	tokens, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *authService) CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrInvalidJWTToken
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user for token refresh: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidJWTToken
	}

	return s.issueTokenPair(ctx, user.ID)
}

func (s *authService) issueTokenPair(ctx context.Context, userID string) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(ctx, userID, s.jwtConfig.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.CreateJWT(ctx, userID, s.jwtConfig.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
