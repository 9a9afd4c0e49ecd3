package access

import (
	"context"
	"sync"

	"certledger/internal/registry/models"
)

// InMemoryAdminStore keeps admin membership in a mutex-guarded map.
type InMemoryAdminStore struct {
	mu     sync.RWMutex
	admins map[models.Identity]bool
}

func NewInMemoryAdminStore() *InMemoryAdminStore {
	return &InMemoryAdminStore{admins: make(map[models.Identity]bool)}
}

func (s *InMemoryAdminStore) Set(_ context.Context, identity models.Identity, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[identity] = enabled
	return nil
}

func (s *InMemoryAdminStore) IsAdmin(_ context.Context, identity models.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admins[identity], nil
}
