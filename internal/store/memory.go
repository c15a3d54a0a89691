package store

import (
	"context"
	"sync"

	"github.com/vbonduro/homeinv/internal/domain"
)

// MemoryStore keeps the snapshot in process memory. It backs tests and the
// `memory` store backend; nothing survives a restart.
type MemoryStore struct {
	mu   sync.Mutex
	snap *domain.Snapshot

	// SaveErr, when set, is returned by Save. Tests use it to exercise the
	// save-failure path.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: &domain.Snapshot{}}
}

func (s *MemoryStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snap = snap.Clone()
	return nil
}

// Seed replaces the stored snapshot directly, bypassing Save and SaveErr.
func (s *MemoryStore) Seed(snap *domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Clone()
}
