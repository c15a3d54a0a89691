package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/imagestore"
)

// SetImage assigns a new map image to a location. The id is generated up
// front, the blob is written without holding the tree lock, and only after a
// successful write does the location's primaryMapImageId flip. Readers may
// see the old image until then; they never see a torn blob. The previous
// blob, if any, is left in place.
func (inv *Inventory) SetImage(ctx context.Context, locationID uuid.UUID, r io.Reader) (uuid.UUID, error) {
	inv.mu.Lock()
	_, ok := inv.locations[locationID]
	inv.mu.Unlock()
	if !ok {
		return uuid.Nil, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
	}

	imageID := uuid.New()
	if err := inv.images.Save(ctx, imageID, r); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save image: %w", err)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	loc, ok := inv.locations[locationID]
	if !ok {
		// Deleted while the blob was being written. Drop the new blob and
		// leave the tree alone.
		inv.logger.Warn("location deleted during image save", "location_id", locationID)
		if err := inv.images.Delete(ctx, imageID); err != nil {
			inv.logger.Error("failed to delete orphaned image blob", "image_id", imageID, "error", err)
		}
		return uuid.Nil, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
	}

	loc.PrimaryMapImageID = &imageID
	loc.UpdatedAt = inv.now()
	inv.locations[locationID] = loc
	inv.reindex()
	return imageID, inv.persist(ctx)
}

// Image streams the location's current map image. A location without an
// image, or one whose blob is missing, yields nil with no error.
func (inv *Inventory) Image(ctx context.Context, locationID uuid.UUID) (io.ReadCloser, error) {
	inv.mu.Lock()
	loc, ok := inv.locations[locationID]
	inv.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
	}
	if loc.PrimaryMapImageID == nil {
		return nil, nil
	}

	rc, err := inv.images.Load(ctx, *loc.PrimaryMapImageID)
	if err != nil {
		if errors.Is(err, imagestore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return rc, nil
}
