package services

import (
	"context"
	"fmt"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/caching"
	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService handles JWT issuance, validation and refresh.
type AuthService interface {
	GenerateTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
}

type authService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // Access token TTL in seconds
	refreshTTL int // Refresh token TTL in seconds
}

// TokenClaims represents JWT claims. Username is carried on refresh tokens
// as a custom claim.
type TokenClaims struct {
	TokenType string  `json:"token_type"`
	Username  *string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// NewAuthService creates a new authentication service
func NewAuthService(cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

// GenerateTokenPair issues an access token and a refresh token for the user.
// The refresh token is registered in the cache under its token ID so it can
// be checked and revoked server-side.
func (s *authService) GenerateTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	now := time.Now()

	access, err := s.signToken(&TokenClaims{
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshID := uuid.NewString()
	refresh, err := s.signToken(&TokenClaims{
		TokenType: tokenTypeRefresh,
		Username:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.refreshTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        refreshID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	cacheKey := fmt.Sprintf("refresh_token:%s", refreshID)
	if err := s.cacheSvc.SetString(ctx, cacheKey, user.ID.String(), time.Duration(s.refreshTTL)*time.Second); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

// ValidateAccessToken validates a JWT access token and returns its claims.
func (s *authService) ValidateAccessToken(token string) (*TokenClaims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

// RefreshAccessToken validates the refresh token and issues a new access token.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("token is not a refresh token")
	}

	cacheKey := fmt.Sprintf("refresh_token:%s", claims.ID)
	if _, err := s.cacheSvc.GetString(ctx, cacheKey); err != nil {
		return "", fmt.Errorf("refresh token revoked or expired")
	}

	now := time.Now()
	access, err := s.signToken(&TokenClaims{
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return access, nil
}

func (s *authService) signToken(claims *TokenClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authService) parseToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
