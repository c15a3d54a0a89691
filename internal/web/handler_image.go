package web

import (
	"io"
	"net/http"
)

// maxImageBytes caps uploads at 20 MiB.
const maxImageBytes = 20 << 20

// handleSetImage stores the request body as the location's new map image.
func (s *Server) handleSetImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxImageBytes)
	defer func() { _ = body.Close() }()

	imageID, err := s.service.SetImage(r.Context(), id, body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"imageId": imageID.String()})
}

// handleGetImage streams the location's current map image; 404 when the
// location has none.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid location id", http.StatusBadRequest)
		return
	}

	rc, err := s.service.Image(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rc == nil {
		http.Error(w, "no image", http.StatusNotFound)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("failed to stream image", "location_id", id, "error", err)
	}
}
