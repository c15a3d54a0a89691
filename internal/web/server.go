// Package web exposes the inventory service as a JSON HTTP API. The handlers
// are a thin layer: every query and command maps onto one service method.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/service"
)

type Server struct {
	service *service.Inventory
	mux     *http.ServeMux
	logger  *slog.Logger
}

func NewServer(svc *service.Inventory, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /locations", s.handleListLocations)
	s.mux.HandleFunc("POST /locations", s.handleCreateLocation)
	s.mux.HandleFunc("GET /locations/{id}", s.handleGetLocation)
	s.mux.HandleFunc("PATCH /locations/{id}", s.handleUpdateLocation)
	s.mux.HandleFunc("DELETE /locations/{id}", s.handleDeleteLocation)
	s.mux.HandleFunc("POST /locations/{id}/move", s.handleMoveLocation)
	s.mux.HandleFunc("PUT /locations/{id}/notes", s.handleSetLocationNotes)
	s.mux.HandleFunc("PUT /locations/{id}/image", s.handleSetImage)
	s.mux.HandleFunc("GET /locations/{id}/image", s.handleGetImage)
	s.mux.HandleFunc("POST /locations/{id}/hotspots", s.handleCreateHotspotLocation)

	s.mux.HandleFunc("POST /items", s.handleCreateItem)
	s.mux.HandleFunc("GET /items", s.handleListItems)
	s.mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)
	s.mux.HandleFunc("POST /items/{id}/move", s.handleMoveItem)
	s.mux.HandleFunc("POST /items/{id}/duplicate", s.handleDuplicateItem)

	s.mux.HandleFunc("DELETE /hotspots/{id}", s.handleDeleteHotspot)
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("POST /reconcile", s.handleReconcile)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errBody(err))
	case errors.Is(err, service.ErrCircularDependency):
		s.writeJSON(w, http.StatusConflict, errBody(err))
	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNoMapImage):
		s.writeJSON(w, http.StatusBadRequest, errBody(err))
	default:
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func decodeBody(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
