package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
	"github.com/vbonduro/homeinv/internal/imagestore"
)

// AddLocation creates a location under parentID (nil for a root). New
// locations sort after their existing siblings.
func (inv *Inventory) AddLocation(ctx context.Context, name string, typ domain.LocationType, parentID *uuid.UUID) (domain.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Location{}, ErrEmptyName
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	var siblings int
	if parentID != nil {
		if _, ok := inv.locations[*parentID]; !ok {
			return domain.Location{}, fmt.Errorf("parent %s: %w", parentID, ErrNotFound)
		}
		siblings = inv.index.ChildCount(*parentID)
	} else {
		siblings = len(inv.index.Roots())
	}

	now := inv.now()
	loc := domain.Location{
		ID:        uuid.New(),
		ParentID:  parentID,
		Name:      name,
		Type:      typ,
		SortOrder: siblings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.locations[loc.ID] = loc
	inv.reindex()
	return loc, inv.persist(ctx)
}

// UpdateLocation replaces a location's name and type.
func (inv *Inventory) UpdateLocation(ctx context.Context, id uuid.UUID, name string, typ domain.LocationType) (domain.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Location{}, ErrEmptyName
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	loc, ok := inv.locations[id]
	if !ok {
		return domain.Location{}, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	loc.Name = name
	loc.Type = typ
	loc.UpdatedAt = inv.now()
	inv.locations[id] = loc
	inv.reindex()
	return loc, inv.persist(ctx)
}

// SetLocationNotes replaces a location's free-text notes. Nil clears them.
func (inv *Inventory) SetLocationNotes(ctx context.Context, id uuid.UUID, notes *string) (domain.Location, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	loc, ok := inv.locations[id]
	if !ok {
		return domain.Location{}, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	loc.Notes = notes
	loc.UpdatedAt = inv.now()
	inv.locations[id] = loc
	inv.reindex()
	return loc, inv.persist(ctx)
}

// MoveLocation reparents a location. The destination must not be the location
// itself or anything beneath it; a violating move returns
// ErrCircularDependency and changes nothing.
func (inv *Inventory) MoveLocation(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	loc, ok := inv.locations[id]
	if !ok {
		return fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	if newParentID != nil {
		if *newParentID == id {
			return ErrCircularDependency
		}
		if _, ok := inv.locations[*newParentID]; !ok {
			return fmt.Errorf("parent %s: %w", newParentID, ErrNotFound)
		}
		if _, inSubtree := inv.index.DescendantIDs(id)[*newParentID]; inSubtree {
			return ErrCircularDependency
		}
	}

	loc.ParentID = newParentID
	loc.UpdatedAt = inv.now()
	inv.locations[id] = loc
	inv.reindex()
	return inv.persist(ctx)
}

// DeleteLocation removes a location and everything beneath it: descendant
// locations (children before parents), their items, and any hotspot that
// targets a removed location or sits on a removed location's map image.
// Image blobs of removed locations are deleted best-effort afterwards.
func (inv *Inventory) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	inv.mu.Lock()

	if _, ok := inv.locations[id]; !ok {
		inv.mu.Unlock()
		return fmt.Errorf("location %s: %w", id, ErrNotFound)
	}

	// Worklist traversal instead of recursion: the tree depth is user
	// controlled.
	order := []uuid.UUID{id}
	for i := 0; i < len(order); i++ {
		for _, child := range inv.index.Children(order[i]) {
			order = append(order, child.ID)
		}
	}

	doomed := make(map[uuid.UUID]struct{}, len(order))
	doomedImages := make(map[uuid.UUID]struct{})
	for _, locID := range order {
		doomed[locID] = struct{}{}
		if img := inv.locations[locID].PrimaryMapImageID; img != nil {
			doomedImages[*img] = struct{}{}
		}
	}

	// Children before parents, so no surviving record ever points at a
	// deleted parent mid-cascade.
	for i := len(order) - 1; i >= 0; i-- {
		delete(inv.locations, order[i])
	}
	for itemID, it := range inv.items {
		if it.LocationID != nil {
			if _, gone := doomed[*it.LocationID]; gone {
				delete(inv.items, itemID)
			}
		}
	}
	for hotspotID, h := range inv.hotspots {
		_, targetGone := doomed[h.TargetLocationID]
		_, imageGone := doomedImages[h.MapImageID]
		if targetGone || imageGone {
			delete(inv.hotspots, hotspotID)
		}
	}
	inv.reindex()

	err := inv.persist(ctx)
	inv.mu.Unlock()

	// Blob cleanup happens outside the lock; a failure only leaks a file.
	for imgID := range doomedImages {
		if derr := inv.images.Delete(ctx, imgID); derr != nil && !errors.Is(derr, imagestore.ErrNotFound) {
			inv.logger.Error("failed to delete image blob", "image_id", imgID, "error", derr)
		}
	}
	return err
}
