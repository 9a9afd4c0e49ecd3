package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certledger/internal/jwttoken"
	"certledger/internal/platform/logger"
	dErrors "certledger/pkg/domain-errors"
)

type AuthServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *AuthServiceSuite) SetupTest() {
	hash, err := HashPassword("correct horse battery staple")
	s.Require().NoError(err)

	tokens := jwttoken.NewService("test-signing-key", "certledger", "certledger-api")
	s.svc = New("operator", hash, tokens, logger.New())
	s.ctx = context.Background()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) TestLoginSuccess() {
	token, err := s.svc.Login(s.ctx, "operator", "correct horse battery staple")
	s.Require().NoError(err)
	s.NotEmpty(token)

	claims, err := s.svc.Verify(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("operator", claims.Username)
	s.Equal("admin", claims.Role)
	s.WithinDuration(time.Now().Add(SessionTTL), claims.ExpiresAt.Time, time.Minute)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.svc.Login(s.ctx, "operator", "wrong")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AuthServiceSuite) TestLoginUnknownUsername() {
	_, err := s.svc.Login(s.ctx, "intruder", "correct horse battery staple")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// Same failure shape as a wrong password.
	_, wrongPass := s.svc.Login(s.ctx, "operator", "wrong")
	s.Equal(wrongPass.Error(), err.Error())
}

func (s *AuthServiceSuite) TestLoginMissingCredentials() {
	_, err := s.svc.Login(s.ctx, "", "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *AuthServiceSuite) TestVerifyRejectsEmptyToken() {
	_, err := s.svc.Verify(s.ctx, "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *AuthServiceSuite) TestValidateTokenAdapter() {
	token, err := s.svc.Login(s.ctx, "operator", "correct horse battery staple")
	s.Require().NoError(err)

	claims, err := s.svc.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("operator", claims.Username)
	s.Equal("admin", claims.Role)
}
