package imagestore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps blobs in a map. It backs tests and the `memory` image
// backend.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[uuid.UUID][]byte

	// SaveErr, when set, is returned by Save.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, id uuid.UUID, r io.Reader) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = data
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, id)
	return nil
}

// Len reports the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
