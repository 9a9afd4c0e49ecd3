package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"certledger/internal/registry/models"
)

// AdminSchema creates the admin membership table.
const AdminSchema = `
CREATE TABLE IF NOT EXISTS registry_admins (
	identity TEXT PRIMARY KEY,
	enabled  BOOLEAN NOT NULL
);
`

// PostgresAdminStore persists admin membership so grants survive restarts.
type PostgresAdminStore struct {
	db *sql.DB
}

func NewPostgresAdminStore(db *sql.DB) *PostgresAdminStore {
	return &PostgresAdminStore{db: db}
}

// EnsureSchema applies the admin table schema.
func (s *PostgresAdminStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, AdminSchema); err != nil {
		return fmt.Errorf("apply admins schema: %w", err)
	}
	return nil
}

func (s *PostgresAdminStore) Set(ctx context.Context, identity models.Identity, enabled bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registry_admins (identity, enabled) VALUES ($1, $2)
		 ON CONFLICT (identity) DO UPDATE SET enabled = EXCLUDED.enabled`,
		identity.String(), enabled,
	)
	if err != nil {
		return fmt.Errorf("set admin membership: %w", err)
	}
	return nil
}

func (s *PostgresAdminStore) IsAdmin(ctx context.Context, identity models.Identity) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT enabled FROM registry_admins WHERE identity = $1`,
		identity.String(),
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check admin membership: %w", err)
	}
	return enabled, nil
}
