package service

import (
	"context"
)

// Reconcile drops records referencing locations that no longer exist:
// hotspots with a dangling target, and items assigned to a dangling location
// (unassigned items always survive). The cleaned snapshot persists only when
// something was actually dropped, so the pass is idempotent. Cycles among
// locations are not repaired here; only dangling leaf references are.
func (inv *Inventory) Reconcile(ctx context.Context) (int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	dropped := 0
	for id, h := range inv.hotspots {
		if _, ok := inv.locations[h.TargetLocationID]; !ok {
			inv.logger.Info("dropping orphaned hotspot", "hotspot_id", id, "target", h.TargetLocationID)
			delete(inv.hotspots, id)
			dropped++
		}
	}
	for id, it := range inv.items {
		if it.LocationID == nil {
			continue
		}
		if _, ok := inv.locations[*it.LocationID]; !ok {
			inv.logger.Info("dropping orphaned item", "item_id", id, "location", it.LocationID)
			delete(inv.items, id)
			dropped++
		}
	}

	if dropped == 0 {
		return 0, nil
	}
	return dropped, inv.persist(ctx)
}
