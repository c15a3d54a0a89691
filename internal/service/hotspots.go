package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
)

// AddHotspot places a marker on mapImageID navigating to targetLocationID.
// Coordinates are clamped into [0, 1].
func (inv *Inventory) AddHotspot(ctx context.Context, targetLocationID uuid.UUID, x, y float64, mapImageID uuid.UUID, label *string) (domain.Hotspot, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.locations[targetLocationID]; !ok {
		return domain.Hotspot{}, fmt.Errorf("target location %s: %w", targetLocationID, ErrNotFound)
	}

	h := domain.Hotspot{
		ID:               uuid.New(),
		MapImageID:       mapImageID,
		TargetLocationID: targetLocationID,
		X:                clamp01(x),
		Y:                clamp01(y),
		Label:            label,
	}
	inv.hotspots[h.ID] = h
	return h, inv.persist(ctx)
}

// CreateHotspotLocation is the map-tap flow: create a child location under
// parentID and a hotspot on the parent's map image pointing at it, as one
// mutation. The parent must have a map image assigned.
func (inv *Inventory) CreateHotspotLocation(ctx context.Context, parentID uuid.UUID, name string, x, y float64) (domain.Location, domain.Hotspot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Location{}, domain.Hotspot{}, ErrEmptyName
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	parent, ok := inv.locations[parentID]
	if !ok {
		return domain.Location{}, domain.Hotspot{}, fmt.Errorf("location %s: %w", parentID, ErrNotFound)
	}
	if parent.PrimaryMapImageID == nil {
		return domain.Location{}, domain.Hotspot{}, ErrNoMapImage
	}

	now := inv.now()
	loc := domain.Location{
		ID:        uuid.New(),
		ParentID:  &parent.ID,
		Name:      name,
		Type:      domain.TypeRoom,
		SortOrder: inv.index.ChildCount(parentID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	h := domain.Hotspot{
		ID:               uuid.New(),
		MapImageID:       *parent.PrimaryMapImageID,
		TargetLocationID: loc.ID,
		X:                clamp01(x),
		Y:                clamp01(y),
	}
	inv.locations[loc.ID] = loc
	inv.hotspots[h.ID] = h
	inv.reindex()
	return loc, h, inv.persist(ctx)
}

func (inv *Inventory) DeleteHotspot(ctx context.Context, id uuid.UUID) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.hotspots[id]; !ok {
		return fmt.Errorf("hotspot %s: %w", id, ErrNotFound)
	}
	delete(inv.hotspots, id)
	return inv.persist(ctx)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
