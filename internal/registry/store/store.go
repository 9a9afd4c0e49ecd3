// Package store owns the canonical certificate table and its indices.
//
// Implementations must keep the record table, the fingerprint index and the
// per-holder index consistent as one atomic unit: a Create either commits
// all three or none. Stores report facts with pkg/platform/sentinel errors;
// the service layer attaches domain error codes.
package store

import (
	"context"

	"certledger/internal/registry/models"
)

// Store is the persistence port for the certificate registry.
type Store interface {
	// Create validates nothing beyond uniqueness: the certificate must
	// already satisfy model invariants. It assigns the next dense id
	// (1..N, no gaps, never reused), stores the record and updates both
	// indices atomically. Returns sentinel.ErrAlreadyUsed when the
	// fingerprint was ever issued before, revoked records included, and
	// sentinel.ErrCapacity when the id space is exhausted.
	Create(ctx context.Context, cert *models.Certificate) (int64, error)

	// Get returns a snapshot of the certificate with the given id, or
	// sentinel.ErrNotFound when id is out of range.
	Get(ctx context.Context, id int64) (*models.Certificate, error)

	// Revoke transitions the certificate to revoked, exactly once.
	// Returns sentinel.ErrNotFound for an out-of-range id and
	// sentinel.ErrInvalidState when the certificate is already revoked.
	Revoke(ctx context.Context, id int64) error

	// Count returns N, the total number of certificates ever issued.
	Count(ctx context.Context) (int64, error)

	// FindByFingerprint returns the certificate carrying the exact
	// fingerprint, or sentinel.ErrNotFound. No partial matching.
	FindByFingerprint(ctx context.Context, fingerprint string) (*models.Certificate, error)

	// ListByHolder returns the ids issued to the holder in issuance
	// order. A holder with no certificates yields an empty slice.
	ListByHolder(ctx context.Context, holder models.Identity) ([]int64, error)
}
