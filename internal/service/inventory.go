// Package service owns the in-memory inventory collections and applies every
// mutation to them. All writes are serialized through one mutex, so no reader
// ever observes a half-updated tree, and each mutation persists the complete
// snapshot before returning.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
	"github.com/vbonduro/homeinv/internal/imagestore"
	"github.com/vbonduro/homeinv/internal/store"
	"github.com/vbonduro/homeinv/internal/tree"
)

type Inventory struct {
	mu        sync.Mutex
	locations map[uuid.UUID]domain.Location
	items     map[uuid.UUID]domain.Item
	hotspots  map[uuid.UUID]domain.Hotspot
	index     *tree.Index

	store  store.Store
	images imagestore.Store
	logger *slog.Logger
	now    func() time.Time
}

// New loads the persisted snapshot, reconciles dangling references, and
// returns the ready-to-serve inventory.
func New(ctx context.Context, st store.Store, images imagestore.Store, logger *slog.Logger) (*Inventory, error) {
	snap, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	inv := &Inventory{
		locations: make(map[uuid.UUID]domain.Location, len(snap.Locations)),
		items:     make(map[uuid.UUID]domain.Item, len(snap.Items)),
		hotspots:  make(map[uuid.UUID]domain.Hotspot, len(snap.Hotspots)),
		store:     st,
		images:    images,
		logger:    logger,
		now:       time.Now,
	}
	for _, loc := range snap.Locations {
		inv.locations[loc.ID] = loc
	}
	for _, it := range snap.Items {
		inv.items[it.ID] = it
	}
	for _, h := range snap.Hotspots {
		inv.hotspots[h.ID] = h
	}
	inv.reindex()

	if dropped, err := inv.Reconcile(ctx); err != nil {
		logger.Error("reconciliation save failed", "error", err)
	} else if dropped > 0 {
		logger.Info("reconciled inventory", "dropped", dropped)
	}
	return inv, nil
}

// reindex rebuilds the tree index from the location map. Callers must hold mu.
func (inv *Inventory) reindex() {
	locs := make([]domain.Location, 0, len(inv.locations))
	for _, loc := range inv.locations {
		locs = append(locs, loc)
	}
	inv.index = tree.NewIndex(locs)
}

// snapshot assembles the full persisted document. Records are ordered by id
// so identical state always serializes identically. Callers must hold mu.
func (inv *Inventory) snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Locations: make([]domain.Location, 0, len(inv.locations)),
		Items:     make([]domain.Item, 0, len(inv.items)),
		Hotspots:  make([]domain.Hotspot, 0, len(inv.hotspots)),
	}
	for _, loc := range inv.locations {
		snap.Locations = append(snap.Locations, loc)
	}
	for _, it := range inv.items {
		snap.Items = append(snap.Items, it)
	}
	for _, h := range inv.hotspots {
		snap.Hotspots = append(snap.Hotspots, h)
	}
	sort.Slice(snap.Locations, func(i, j int) bool {
		return snap.Locations[i].ID.String() < snap.Locations[j].ID.String()
	})
	sort.Slice(snap.Items, func(i, j int) bool {
		return snap.Items[i].ID.String() < snap.Items[j].ID.String()
	})
	sort.Slice(snap.Hotspots, func(i, j int) bool {
		return snap.Hotspots[i].ID.String() < snap.Hotspots[j].ID.String()
	})
	return snap
}

// persist writes the current snapshot. A failed save leaves the in-memory
// state authoritative for the session; the next successful save carries this
// change too, since every save is the full document. Callers must hold mu.
func (inv *Inventory) persist(ctx context.Context) error {
	if err := inv.store.Save(ctx, inv.snapshot()); err != nil {
		inv.logger.Error("failed to persist inventory", "error", err)
		return fmt.Errorf("failed to persist inventory: %w", err)
	}
	return nil
}

// Read queries. Each takes the mutex so it sees a complete tree, never one
// mid-mutation.

func (inv *Inventory) Location(id uuid.UUID) (domain.Location, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.index.Location(id)
}

func (inv *Inventory) Roots() []domain.Location {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.index.Roots()
}

func (inv *Inventory) Children(id uuid.UUID) []domain.Location {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.index.Children(id)
}

func (inv *Inventory) ChildCount(id uuid.UUID) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.index.ChildCount(id)
}

func (inv *Inventory) DescendantIDs(id uuid.UUID) map[uuid.UUID]struct{} {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.index.DescendantIDs(id)
}

func (inv *Inventory) BreadcrumbPath(id uuid.UUID) ([]domain.Location, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	loc, ok := inv.index.Location(id)
	if !ok {
		return nil, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	return inv.index.BreadcrumbPath(loc), nil
}

func (inv *Inventory) Item(id uuid.UUID) (domain.Item, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	it, ok := inv.items[id]
	return it, ok
}

// ItemsOf returns the items assigned to locationID; nil selects unassigned
// items.
func (inv *Inventory) ItemsOf(locationID *uuid.UUID) []domain.Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return tree.ItemsOf(inv.itemList(), locationID)
}

func (inv *Inventory) SearchItems(query string) []domain.Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return tree.SearchItems(inv.itemList(), query)
}

func (inv *Inventory) HotspotsForImage(mapImageID uuid.UUID) []domain.Hotspot {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return tree.HotspotsForImage(inv.hotspotList(), mapImageID)
}

// itemList returns items ordered by creation time so query results are
// stable. Callers must hold mu.
func (inv *Inventory) itemList() []domain.Item {
	items := make([]domain.Item, 0, len(inv.items))
	for _, it := range inv.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	return items
}

func (inv *Inventory) hotspotList() []domain.Hotspot {
	hotspots := make([]domain.Hotspot, 0, len(inv.hotspots))
	for _, h := range inv.hotspots {
		hotspots = append(hotspots, h)
	}
	sort.Slice(hotspots, func(i, j int) bool {
		return hotspots[i].ID.String() < hotspots[j].ID.String()
	})
	return hotspots
}
