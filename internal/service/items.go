package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
)

// AddItem creates an item in the given location, or unassigned when
// locationID is nil.
func (inv *Inventory) AddItem(ctx context.Context, name string, locationID *uuid.UUID) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, ErrEmptyName
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if locationID != nil {
		if _, ok := inv.locations[*locationID]; !ok {
			return domain.Item{}, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
		}
	}

	now := inv.now()
	it := domain.Item{
		ID:         uuid.New(),
		LocationID: locationID,
		Name:       name,
		Quantity:   1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	inv.items[it.ID] = it
	return it, inv.persist(ctx)
}

// UpdateItem replaces an item's name, quantity and note.
func (inv *Inventory) UpdateItem(ctx context.Context, id uuid.UUID, name string, quantity int, note *string) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, ErrEmptyName
	}
	if quantity < 1 {
		return domain.Item{}, ErrInvalidQuantity
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	it, ok := inv.items[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	it.Name = name
	it.Quantity = quantity
	it.Note = note
	it.UpdatedAt = inv.now()
	inv.items[id] = it
	return it, inv.persist(ctx)
}

func (inv *Inventory) DeleteItem(ctx context.Context, id uuid.UUID) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.items[id]; !ok {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	delete(inv.items, id)
	return inv.persist(ctx)
}

// MoveItem reassigns an item to newLocationID; nil unassigns it.
func (inv *Inventory) MoveItem(ctx context.Context, id uuid.UUID, newLocationID *uuid.UUID) (domain.Item, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	it, ok := inv.items[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if newLocationID != nil {
		if _, ok := inv.locations[*newLocationID]; !ok {
			return domain.Item{}, fmt.Errorf("location %s: %w", newLocationID, ErrNotFound)
		}
	}
	it.LocationID = newLocationID
	it.UpdatedAt = inv.now()
	inv.items[id] = it
	return it, inv.persist(ctx)
}

// DuplicateItem clones an item into newLocationID with a fresh id, a name
// marked as a copy, fresh timestamps, and the same note and quantity.
func (inv *Inventory) DuplicateItem(ctx context.Context, id uuid.UUID, newLocationID *uuid.UUID) (domain.Item, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	src, ok := inv.items[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if newLocationID != nil {
		if _, ok := inv.locations[*newLocationID]; !ok {
			return domain.Item{}, fmt.Errorf("location %s: %w", newLocationID, ErrNotFound)
		}
	}

	now := inv.now()
	dup := domain.Item{
		ID:         uuid.New(),
		LocationID: newLocationID,
		Name:       src.Name + " (Copy)",
		Quantity:   src.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if src.Note != nil {
		note := *src.Note
		dup.Note = &note
	}
	inv.items[dup.ID] = dup
	return dup, inv.persist(ctx)
}
