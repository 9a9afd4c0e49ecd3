package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"certledger/internal/registry/models"
	dErrors "certledger/pkg/domain-errors"
)

const (
	owner  = models.Identity("0xowner")
	admin1 = models.Identity("0xadmin1")
	random = models.Identity("0xrandom")
)

type AccessControlSuite struct {
	suite.Suite
	control *Control
	ctx     context.Context
}

func (s *AccessControlSuite) SetupTest() {
	control, err := New(owner, NewInMemoryAdminStore())
	s.Require().NoError(err)
	s.control = control
	s.ctx = context.Background()
}

func TestAccessControlSuite(t *testing.T) {
	suite.Run(t, new(AccessControlSuite))
}

func (s *AccessControlSuite) TestOwnerIsImplicitAdmin() {
	isAdmin, err := s.control.IsAdmin(s.ctx, owner)
	s.Require().NoError(err)
	s.True(isAdmin)

	authorized, err := s.control.IsAuthorized(s.ctx, owner)
	s.Require().NoError(err)
	s.True(authorized)
}

func (s *AccessControlSuite) TestGrantAndRevokeAdmin() {
	s.Run("grant makes identity authorized", func() {
		s.Require().NoError(s.control.SetAdmin(s.ctx, owner, admin1, true))

		isAdmin, err := s.control.IsAdmin(s.ctx, admin1)
		s.Require().NoError(err)
		s.True(isAdmin)
	})

	s.Run("revoke removes authorization", func() {
		s.Require().NoError(s.control.SetAdmin(s.ctx, owner, admin1, false))

		isAdmin, err := s.control.IsAdmin(s.ctx, admin1)
		s.Require().NoError(err)
		s.False(isAdmin)
	})
}

func (s *AccessControlSuite) TestOnlyOwnerMaySetAdmin() {
	err := s.control.SetAdmin(s.ctx, random, admin1, true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	// The owner gate runs before argument checks: a non-owner with a null
	// target still sees the ownership error.
	err = s.control.SetAdmin(s.ctx, random, models.NullIdentity, true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *AccessControlSuite) TestRejectsNullAdminIdentity() {
	err := s.control.SetAdmin(s.ctx, owner, models.NullIdentity, true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *AccessControlSuite) TestOwnerCannotBeDisabled() {
	// Even an explicit disable entry for the owner has no effect on the
	// effective admin set.
	s.Require().NoError(s.control.SetAdmin(s.ctx, owner, owner, false))

	isAdmin, err := s.control.IsAdmin(s.ctx, owner)
	s.Require().NoError(err)
	s.True(isAdmin)
}

func (s *AccessControlSuite) TestNullIdentityNeverAuthorized() {
	authorized, err := s.control.IsAuthorized(s.ctx, models.NullIdentity)
	s.Require().NoError(err)
	s.False(authorized)
}

func (s *AccessControlSuite) TestRequiresOwner() {
	_, err := New(models.NullIdentity, NewInMemoryAdminStore())
	s.Require().Error(err)
}
