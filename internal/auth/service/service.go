// Package service implements operator login: a username/password check that
// issues short-lived admin session tokens. The session only gates the HTTP
// surface; the registry's own access control stays authoritative.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"certledger/internal/jwttoken"
	"certledger/internal/platform/middleware"
	dErrors "certledger/pkg/domain-errors"
)

// SessionTTL bounds operator session lifetime.
const SessionTTL = 24 * time.Hour

const roleAdmin = "admin"

// Service authenticates the configured operator and manages session tokens.
type Service struct {
	username     string
	passwordHash []byte
	tokens       *jwttoken.Service
	logger       *slog.Logger
}

func New(username string, passwordHash []byte, tokens *jwttoken.Service, logger *slog.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
		logger:       logger,
	}
}

// HashPassword derives the bcrypt hash stored in configuration.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Login checks the operator credentials and returns a signed session token.
// Wrong username and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "username and password required")
	}
	if username != s.username {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "failed login attempt", "username", username)
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateToken(username, roleAdmin, SessionTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return token, nil
}

// Verify validates a session token and returns its claims.
func (s *Service) Verify(_ context.Context, token string) (*jwttoken.Claims, error) {
	if token == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "token required")
	}
	return s.tokens.ValidateToken(token)
}

// ValidateToken adapts the JWT service to the middleware validator port.
func (s *Service) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{Username: claims.Username, Role: claims.Role}, nil
}
