// Package imagestore stores map-image blobs by opaque id, one blob per id.
// Ids are never reused: replacing a location's image writes a new blob under
// a fresh id rather than overwriting.
package imagestore

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Load when no blob exists for the id. Callers
// treat it as "no image", not as a failure.
var ErrNotFound = errors.New("image not found")

type Store interface {
	Save(ctx context.Context, id uuid.UUID, r io.Reader) error
	Load(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
