// Package tree implements the read-only queries over the inventory hierarchy.
// Locations are stored flat; the tree exists only through ParentID links, so
// an Index materializes the two derived views every query needs: an id lookup
// and a parent-to-children index.
package tree

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
)

// Index is a point-in-time view over a set of locations. It is cheap to
// rebuild and holds no state of its own; callers rebuild it after mutations.
type Index struct {
	byID     map[uuid.UUID]domain.Location
	byParent map[uuid.UUID][]domain.Location
	roots    []domain.Location
}

// NewIndex builds the lookup and child-index views from a flat location list.
func NewIndex(locations []domain.Location) *Index {
	idx := &Index{
		byID:     make(map[uuid.UUID]domain.Location, len(locations)),
		byParent: make(map[uuid.UUID][]domain.Location),
	}
	for _, loc := range locations {
		idx.byID[loc.ID] = loc
		if loc.ParentID == nil {
			idx.roots = append(idx.roots, loc)
		} else {
			idx.byParent[*loc.ParentID] = append(idx.byParent[*loc.ParentID], loc)
		}
	}
	sortLocations(idx.roots)
	for _, siblings := range idx.byParent {
		sortLocations(siblings)
	}
	return idx
}

// Location returns the location with the given id, if present.
func (idx *Index) Location(id uuid.UUID) (domain.Location, bool) {
	loc, ok := idx.byID[id]
	return loc, ok
}

// Roots returns all locations with no parent, in sibling order.
func (idx *Index) Roots() []domain.Location {
	return append([]domain.Location(nil), idx.roots...)
}

// Children returns the direct children of id, in sibling order.
func (idx *Index) Children(id uuid.UUID) []domain.Location {
	return append([]domain.Location(nil), idx.byParent[id]...)
}

// ChildCount returns the number of direct children of id.
func (idx *Index) ChildCount(id uuid.UUID) int {
	return len(idx.byParent[id])
}

// DescendantIDs collects every transitive child of id, breadth-first. The
// visited set makes the walk terminate even if a stored cycle slipped in
// through a hand-edited document.
func (idx *Index) DescendantIDs(id uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{})
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range idx.byParent[cur] {
			if _, seen := out[child.ID]; seen || child.ID == id {
				continue
			}
			out[child.ID] = struct{}{}
			queue = append(queue, child.ID)
		}
	}
	return out
}

// BreadcrumbPath walks ParentID links from loc to its root and returns the
// chain in root-to-leaf order. A visited set guards against cycles in corrupt
// data; the walk stops rather than looping.
func (idx *Index) BreadcrumbPath(loc domain.Location) []domain.Location {
	path := []domain.Location{loc}
	visited := map[uuid.UUID]struct{}{loc.ID: {}}
	cur := loc
	for cur.ParentID != nil {
		parent, ok := idx.byID[*cur.ParentID]
		if !ok {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			break
		}
		visited[parent.ID] = struct{}{}
		path = append(path, parent)
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// sortLocations orders siblings by sort order, ties broken by name
// case-insensitively.
func sortLocations(locs []domain.Location) {
	sort.SliceStable(locs, func(i, j int) bool {
		if locs[i].SortOrder != locs[j].SortOrder {
			return locs[i].SortOrder < locs[j].SortOrder
		}
		return strings.ToLower(locs[i].Name) < strings.ToLower(locs[j].Name)
	})
}

// ItemsOf filters items by exact location match. A nil locationID selects
// unassigned items only.
func ItemsOf(items []domain.Item, locationID *uuid.UUID) []domain.Item {
	var out []domain.Item
	for _, it := range items {
		switch {
		case locationID == nil && it.LocationID == nil:
			out = append(out, it)
		case locationID != nil && it.LocationID != nil && *it.LocationID == *locationID:
			out = append(out, it)
		}
	}
	return out
}

// SearchItems matches items whose name contains query, case-insensitively.
// An empty or whitespace-only query yields no results.
func SearchItems(items []domain.Item, query string) []domain.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []domain.Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// HotspotsForImage filters hotspots belonging to the given map image.
func HotspotsForImage(hotspots []domain.Hotspot, mapImageID uuid.UUID) []domain.Hotspot {
	var out []domain.Hotspot
	for _, h := range hotspots {
		if h.MapImageID == mapImageID {
			out = append(out, h)
		}
	}
	return out
}
