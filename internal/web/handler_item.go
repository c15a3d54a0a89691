package web

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
)

type createItemRequest struct {
	Name       string     `json:"name"`
	LocationID *uuid.UUID `json:"locationId"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.service.AddItem(r.Context(), req.Name, req.LocationID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

// handleListItems returns the items of ?location=, unassigned items for
// ?location=unassigned.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "unassigned" {
		s.writeJSON(w, http.StatusOK, itemList(s.service.ItemsOf(nil)))
		return
	}

	id, err := uuid.Parse(location)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, itemList(s.service.ItemsOf(&id)))
}

type updateItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Note     *string `json:"note"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.service.UpdateItem(r.Context(), id, req.Name, req.Quantity, req.Note)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteItem(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveItemRequest struct {
	NewLocationID *uuid.UUID `json:"newLocationId"`
}

func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var req moveItemRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.service.MoveItem(r.Context(), id, req.NewLocationID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDuplicateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var req moveItemRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.service.DuplicateItem(r.Context(), id, req.NewLocationID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	s.writeJSON(w, http.StatusOK, itemList(s.service.SearchItems(query)))
}

// itemList never serializes as JSON null.
func itemList(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}
