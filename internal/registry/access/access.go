// Package access tracks the registry owner and the set of identities granted
// admin privilege. Every mutating registry operation consults it before any
// argument validation.
package access

import (
	"context"
	"fmt"

	"certledger/internal/registry/models"
	dErrors "certledger/pkg/domain-errors"
)

// AdminStore is the persistence port for admin membership.
type AdminStore interface {
	Set(ctx context.Context, identity models.Identity, enabled bool) error
	IsAdmin(ctx context.Context, identity models.Identity) (bool, error)
}

// Control answers authorization questions for the registry. The owner is
// fixed at construction, is implicitly an admin, and can never be removed
// or disabled.
type Control struct {
	owner  models.Identity
	admins AdminStore
}

func New(owner models.Identity, admins AdminStore) (*Control, error) {
	if owner.IsNull() {
		return nil, fmt.Errorf("registry owner identity is required")
	}
	return &Control{owner: owner, admins: admins}, nil
}

func (c *Control) Owner() models.Identity {
	return c.owner
}

// IsAuthorized reports whether identity may issue and revoke certificates:
// the owner, or any identity granted admin.
func (c *Control) IsAuthorized(ctx context.Context, identity models.Identity) (bool, error) {
	return c.IsAdmin(ctx, identity)
}

// IsAdmin reports effective admin membership. The owner is always a member
// of the effective admin set, whatever the store says.
func (c *Control) IsAdmin(ctx context.Context, identity models.Identity) (bool, error) {
	if identity.IsNull() {
		return false, nil
	}
	if identity == c.owner {
		return true, nil
	}
	enabled, err := c.admins.IsAdmin(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("check admin membership: %w", err)
	}
	return enabled, nil
}

// SetAdmin grants or revokes admin privilege. Only the owner may call it.
// The owner gate runs before identity validation so an unauthorized caller
// learns nothing about argument validity.
func (c *Control) SetAdmin(ctx context.Context, caller, identity models.Identity, enabled bool) error {
	if caller != c.owner {
		return dErrors.New(dErrors.CodeForbidden, "caller is not the owner")
	}
	if identity.IsNull() {
		return dErrors.New(dErrors.CodeValidation, "invalid admin identity")
	}
	if err := c.admins.Set(ctx, identity, enabled); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update admin membership")
	}
	return nil
}
