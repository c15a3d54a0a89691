package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocationType classifies a node in the inventory hierarchy.
type LocationType string

const (
	TypeHouse   LocationType = "house"
	TypeRoom    LocationType = "room"
	TypeCabinet LocationType = "cabinet"
	TypeDrawer  LocationType = "drawer"
	TypeBin     LocationType = "bin"
	TypeShelf   LocationType = "shelf"
	TypeZone    LocationType = "zone"
	TypeOther   LocationType = "other"
)

// LocationTypes lists every valid type, in display order.
var LocationTypes = []LocationType{
	TypeHouse, TypeRoom, TypeCabinet, TypeDrawer, TypeBin, TypeShelf, TypeZone, TypeOther,
}

// ParseLocationType maps a stored string to a LocationType. Unknown values
// fall back to TypeOther so documents written by newer versions still load.
func ParseLocationType(s string) LocationType {
	for _, t := range LocationTypes {
		if string(t) == s {
			return t
		}
	}
	return TypeOther
}

// Location is a node in the inventory tree. ParentID nil means root. The
// parent graph must stay acyclic; every reparent is validated against that.
type Location struct {
	ID                uuid.UUID    `json:"id"`
	ParentID          *uuid.UUID   `json:"parentId,omitempty"`
	Name              string       `json:"name"`
	Type              LocationType `json:"type"`
	SortOrder         int          `json:"sortOrder"`
	PrimaryMapImageID *uuid.UUID   `json:"primaryMapImageId,omitempty"`
	Notes             *string      `json:"notes,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	// DeletedAt is carried for document compatibility. Deletes are hard;
	// nothing in the current code sets or filters on it.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Item is a stored possession. LocationID nil means unassigned.
type Item struct {
	ID         uuid.UUID  `json:"id"`
	LocationID *uuid.UUID `json:"locationId,omitempty"`
	Name       string     `json:"name"`
	Note       *string    `json:"note,omitempty"`
	Quantity   int        `json:"quantity"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Hotspot is a tappable marker on a location's map image linking to another
// location. X and Y are normalized to [0, 1] within the image.
type Hotspot struct {
	ID               uuid.UUID `json:"id"`
	MapImageID       uuid.UUID `json:"mapImageId"`
	TargetLocationID uuid.UUID `json:"targetLocationId"`
	X                float64   `json:"x"`
	Y                float64   `json:"y"`
	Label            *string   `json:"label,omitempty"`
}

// Snapshot is the complete persisted state: every save writes one of these in
// full, every load produces one.
type Snapshot struct {
	Locations []Location `json:"locations"`
	Items     []Item     `json:"items"`
	Hotspots  []Hotspot  `json:"hotspots"`
}

// Clone returns a deep copy so a snapshot handed to a store can never alias
// the service's live collections.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Locations: make([]Location, len(s.Locations)),
		Items:     make([]Item, len(s.Items)),
		Hotspots:  make([]Hotspot, len(s.Hotspots)),
	}
	for i, l := range s.Locations {
		l.ParentID = cloneID(l.ParentID)
		l.PrimaryMapImageID = cloneID(l.PrimaryMapImageID)
		l.Notes = cloneStr(l.Notes)
		l.DeletedAt = cloneTime(l.DeletedAt)
		out.Locations[i] = l
	}
	for i, it := range s.Items {
		it.LocationID = cloneID(it.LocationID)
		it.Note = cloneStr(it.Note)
		out.Items[i] = it
	}
	for i, h := range s.Hotspots {
		h.Label = cloneStr(h.Label)
		out.Hotspots[i] = h
	}
	return out
}

func cloneID(p *uuid.UUID) *uuid.UUID {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
