package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vbonduro/homeinv/internal/domain"
)

// JSONFileStore keeps the whole inventory in a single JSON document. It is
// the format the original app versions wrote, so it also carries the legacy
// migration: a pre-items document was a bare array of locations.
type JSONFileStore struct {
	path   string
	logger *slog.Logger
}

func NewJSONFileStore(path string, logger *slog.Logger) (*JSONFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create inventory directory: %w", err)
	}
	return &JSONFileStore{path: path, logger: logger}, nil
}

// Load decodes the current schema, falling back to the legacy bare-array
// schema. A legacy document is rewritten in the current format right away so
// the upgrade happens exactly once. Corruption and absence both degrade to an
// empty snapshot; the caller starts fresh instead of crashing.
func (s *JSONFileStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no saved inventory, starting fresh", "path", s.path)
		} else {
			s.logger.Error("failed to read inventory document", "path", s.path, "error", err)
		}
		return &domain.Snapshot{}, nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err == nil {
		s.logger.Info("loaded inventory",
			"locations", len(snap.Locations), "items", len(snap.Items), "hotspots", len(snap.Hotspots))
		return &snap, nil
	} else if legacy, lerr := decodeLegacy(data); lerr == nil {
		s.logger.Info("migrating legacy inventory document", "locations", len(legacy.Locations))
		if serr := s.Save(ctx, legacy); serr != nil {
			s.logger.Error("failed to rewrite legacy document", "error", serr)
		}
		return legacy, nil
	} else {
		s.logger.Error("failed to decode inventory document, starting fresh", "error", err)
		return &domain.Snapshot{}, nil
	}
}

// Save writes the snapshot to a temp file in the same directory and renames
// it over the document, so a crash mid-write never leaves a torn file.
func (s *JSONFileStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".inventory-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace inventory document: %w", err)
	}
	return nil
}

// decodeLegacy handles the pre-items document format: a bare JSON array of
// locations. json.Unmarshal rejects an array for a struct target, so reaching
// here means the current-schema decode already failed.
func decodeLegacy(data []byte) (*domain.Snapshot, error) {
	var locations []domain.Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, err
	}
	return &domain.Snapshot{Locations: locations}, nil
}
