package web

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
)

// handleListLocations returns roots by default, or the children of ?parent=.
func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	parent := r.URL.Query().Get("parent")
	if parent == "" {
		s.writeJSON(w, http.StatusOK, s.locationList(s.service.Roots()))
		return
	}

	parentID, err := uuid.Parse(parent)
	if err != nil {
		http.Error(w, "invalid parent id", http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, s.locationList(s.service.Children(parentID)))
}

type createLocationRequest struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	ParentID *uuid.UUID `json:"parentId"`
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	loc, err := s.service.AddLocation(r.Context(), req.Name, domain.ParseLocationType(req.Type), req.ParentID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, loc)
}

// locationDetail is the read model for one location: the record itself, its
// breadcrumb, ordered children with child counts, items, and the hotspots on
// its current map image.
type locationDetail struct {
	domain.Location
	Breadcrumb []domain.Location `json:"breadcrumb"`
	Children   []locationEntry   `json:"children"`
	Items      []domain.Item     `json:"items"`
	Hotspots   []domain.Hotspot  `json:"hotspots"`
}

type locationEntry struct {
	domain.Location
	ChildCount int `json:"childCount"`
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}

	loc, ok := s.service.Location(id)
	if !ok {
		http.Error(w, "location not found", http.StatusNotFound)
		return
	}
	breadcrumb, err := s.service.BreadcrumbPath(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	detail := locationDetail{
		Location:   loc,
		Breadcrumb: breadcrumb,
		Children:   s.locationList(s.service.Children(id)),
		Items:      s.service.ItemsOf(&id),
	}
	if loc.PrimaryMapImageID != nil {
		detail.Hotspots = s.service.HotspotsForImage(*loc.PrimaryMapImageID)
	}
	s.writeJSON(w, http.StatusOK, detail)
}

type updateLocationRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}
	var req updateLocationRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	loc, err := s.service.UpdateLocation(r.Context(), id, req.Name, domain.ParseLocationType(req.Type))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteLocation(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveLocationRequest struct {
	NewParentID *uuid.UUID `json:"newParentId"`
}

func (s *Server) handleMoveLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}
	var req moveLocationRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.service.MoveLocation(r.Context(), id, req.NewParentID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setNotesRequest struct {
	Notes *string `json:"notes"`
}

func (s *Server) handleSetLocationNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}
	var req setNotesRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	loc, err := s.service.SetLocationNotes(r.Context(), id, req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loc)
}

type createHotspotRequest struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// handleCreateHotspotLocation is the map-tap flow: a new child location plus
// the hotspot pointing at it, in one request.
func (s *Server) handleCreateHotspotLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}
	var req createHotspotRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	loc, hotspot, err := s.service.CreateHotspotLocation(r.Context(), id, req.Name, req.X, req.Y)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"location": loc, "hotspot": hotspot})
}

func (s *Server) handleDeleteHotspot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid hotspot id", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteHotspot(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	dropped, err := s.service.Reconcile(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"dropped": dropped})
}

func (s *Server) locationList(locs []domain.Location) []locationEntry {
	out := make([]locationEntry, len(locs))
	for i, loc := range locs {
		out[i] = locationEntry{Location: loc, ChildCount: s.service.ChildCount(loc.ID)}
	}
	return out
}
