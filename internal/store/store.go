// Package store persists the inventory snapshot. Every backend implements the
// same full-snapshot contract: Load returns the complete document (an empty
// one when nothing usable is on disk) and Save atomically replaces it.
package store

import (
	"context"

	"github.com/vbonduro/homeinv/internal/domain"
)

type Store interface {
	// Load reads the durable snapshot. A missing or unreadable document is
	// not an error: the store logs the problem and returns an empty snapshot.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save writes the complete snapshot, replacing whatever was stored.
	Save(ctx context.Context, snap *domain.Snapshot) error
}
