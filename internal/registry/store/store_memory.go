package store

import (
	"context"
	"math"
	"sync"

	"certledger/internal/registry/models"
	"certledger/pkg/platform/sentinel"
)

// InMemory keeps the certificate table and both indices under one lock so
// check-then-insert is atomic and readers always observe a committed state.
type InMemory struct {
	mu            sync.RWMutex
	records       []*models.Certificate
	byFingerprint map[string]int64
	byHolder      map[models.Identity][]int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		byFingerprint: make(map[string]int64),
		byHolder:      make(map[models.Identity][]int64),
	}
}

func (s *InMemory) Create(_ context.Context, cert *models.Certificate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byFingerprint[cert.Fingerprint]; exists {
		return 0, sentinel.ErrAlreadyUsed
	}
	if int64(len(s.records)) == math.MaxInt64 {
		return 0, sentinel.ErrCapacity
	}

	stored := *cert
	stored.ID = int64(len(s.records)) + 1

	s.records = append(s.records, &stored)
	s.byFingerprint[stored.Fingerprint] = stored.ID
	s.byHolder[stored.Holder] = append(s.byHolder[stored.Holder], stored.ID)

	cert.ID = stored.ID
	return stored.ID, nil
}

func (s *InMemory) Get(_ context.Context, id int64) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(id)
}

func (s *InMemory) Revoke(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 1 || id > int64(len(s.records)) {
		return sentinel.ErrNotFound
	}
	cert := s.records[id-1]
	if err := cert.CanRevoke(); err != nil {
		return sentinel.ErrInvalidState
	}
	cert.ApplyRevocation()
	return nil
}

func (s *InMemory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *InMemory) FindByFingerprint(_ context.Context, fingerprint string) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byFingerprint[fingerprint]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.snapshot(id)
}

func (s *InMemory) ListByHolder(_ context.Context, holder models.Identity) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byHolder[holder]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}

// snapshot copies the record so callers never share memory with the table.
// Must be called while holding s.mu.
func (s *InMemory) snapshot(id int64) (*models.Certificate, error) {
	if id < 1 || id > int64(len(s.records)) {
		return nil, sentinel.ErrNotFound
	}
	cert := *s.records[id-1]
	return &cert, nil
}
