package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"certledger/internal/registry/models"
	"certledger/pkg/platform/sentinel"
)

// Schema creates the certificate table and indices. Applied on startup and
// by integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS certificates (
	id           BIGINT PRIMARY KEY,
	holder_name  TEXT NOT NULL,
	subject_name TEXT NOT NULL,
	fingerprint  TEXT NOT NULL UNIQUE,
	holder       TEXT NOT NULL,
	issued_at    TIMESTAMPTZ NOT NULL,
	status       TEXT NOT NULL,
	issued_by    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS certificates_holder_idx ON certificates (holder, id);
`

const uniqueViolation = "23505"

// PostgresStore persists certificates in PostgreSQL.
//
// Mutations run in a single transaction holding an exclusive table lock for
// id assignment, which keeps the id sequence dense and gap-free under
// concurrent writers. The unique index on fingerprint backs the
// history-wide uniqueness invariant.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed certificate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema applies the table schema.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply certificates schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, cert *models.Certificate) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create certificate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// One writer at a time: dense ids require count+1 assignment to be
	// serialized with the insert.
	if _, err := tx.ExecContext(ctx, `LOCK TABLE certificates IN EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock certificates: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM certificates WHERE fingerprint = $1)`,
		cert.Fingerprint,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check fingerprint: %w", err)
	}
	if exists {
		return 0, sentinel.ErrAlreadyUsed
	}

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count certificates: %w", err)
	}
	next := count + 1
	if next < 1 {
		return 0, sentinel.ErrCapacity
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO certificates (id, holder_name, subject_name, fingerprint, holder, issued_at, status, issued_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		next, cert.HolderName, cert.SubjectName, cert.Fingerprint,
		cert.Holder.String(), cert.IssuedAt, string(cert.Status), cert.IssuedBy.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, sentinel.ErrAlreadyUsed
		}
		return 0, fmt.Errorf("insert certificate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create certificate: %w", err)
	}
	cert.ID = next
	return next, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*models.Certificate, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, holder_name, subject_name, fingerprint, holder, issued_at, status, issued_by
		 FROM certificates WHERE id = $1`, id))
}

func (s *PostgresStore) Revoke(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin revoke certificate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM certificates WHERE id = $1 FOR UPDATE`, id,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load certificate for revocation: %w", err)
	}
	if models.Status(status) == models.StatusRevoked {
		return sentinel.ErrInvalidState
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE certificates SET status = $1 WHERE id = $2`,
		string(models.StatusRevoked), id,
	); err != nil {
		return fmt.Errorf("revoke certificate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit revoke certificate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count certificates: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) FindByFingerprint(ctx context.Context, fingerprint string) (*models.Certificate, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, holder_name, subject_name, fingerprint, holder, issued_at, status, issued_by
		 FROM certificates WHERE fingerprint = $1`, fingerprint))
}

func (s *PostgresStore) ListByHolder(ctx context.Context, holder models.Identity) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM certificates WHERE holder = $1 ORDER BY id`, holder.String())
	if err != nil {
		return nil, fmt.Errorf("list certificates by holder: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan certificate id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate certificate ids: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) scanOne(row *sql.Row) (*models.Certificate, error) {
	var cert models.Certificate
	var holder, issuedBy, status string
	err := row.Scan(&cert.ID, &cert.HolderName, &cert.SubjectName, &cert.Fingerprint,
		&holder, &cert.IssuedAt, &status, &issuedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan certificate: %w", err)
	}
	cert.Holder = models.Identity(holder)
	cert.IssuedBy = models.Identity(issuedBy)
	cert.Status = models.Status(status)
	return &cert, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
