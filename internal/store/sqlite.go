package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/homeinv/internal/domain"
)

// SQLiteStore holds the snapshot in three tables. The contract is the same as
// the JSON backend: Save replaces the whole document, inside one transaction
// so readers of the file never see a partial snapshot.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

func (s *SQLiteStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	if err := s.loadLocations(ctx, snap); err != nil {
		s.logger.Error("failed to load locations, starting fresh", "error", err)
		return &domain.Snapshot{}, nil
	}
	if err := s.loadItems(ctx, snap); err != nil {
		s.logger.Error("failed to load items, starting fresh", "error", err)
		return &domain.Snapshot{}, nil
	}
	if err := s.loadHotspots(ctx, snap); err != nil {
		s.logger.Error("failed to load hotspots, starting fresh", "error", err)
		return &domain.Snapshot{}, nil
	}

	s.logger.Info("loaded inventory",
		"locations", len(snap.Locations), "items", len(snap.Items), "hotspots", len(snap.Hotspots))
	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"hotspots", "items", "locations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, loc := range snap.Locations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO locations (id, parent_id, name, type, sort_order, primary_map_image_id, notes, created_at, updated_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, loc.ID.String(), idOrNil(loc.ParentID), loc.Name, string(loc.Type), loc.SortOrder,
			idOrNil(loc.PrimaryMapImageID), loc.Notes, loc.CreatedAt.Format(time.RFC3339Nano),
			loc.UpdatedAt.Format(time.RFC3339Nano), timeOrNil(loc.DeletedAt)); err != nil {
			return fmt.Errorf("failed to insert location: %w", err)
		}
	}
	for _, it := range snap.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, location_id, name, note, quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, it.ID.String(), idOrNil(it.LocationID), it.Name, it.Note, it.Quantity,
			it.CreatedAt.Format(time.RFC3339Nano), it.UpdatedAt.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}
	for _, h := range snap.Hotspots {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO hotspots (id, map_image_id, target_location_id, x, y, label)
			VALUES (?, ?, ?, ?, ?, ?)
		`, h.ID.String(), h.MapImageID.String(), h.TargetLocationID.String(), h.X, h.Y, h.Label); err != nil {
			return fmt.Errorf("failed to insert hotspot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadLocations(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, name, type, sort_order, primary_map_image_id, notes, created_at, updated_at, deleted_at
		FROM locations
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			loc                          domain.Location
			id, createdAt, updatedAt     string
			parentID, imageID, deletedAt sql.NullString
			typ                          string
		)
		if err := rows.Scan(&id, &parentID, &loc.Name, &typ, &loc.SortOrder, &imageID, &loc.Notes, &createdAt, &updatedAt, &deletedAt); err != nil {
			return fmt.Errorf("failed to scan location: %w", err)
		}
		if loc.ID, err = uuid.Parse(id); err != nil {
			return fmt.Errorf("failed to parse location id %q: %w", id, err)
		}
		loc.Type = domain.ParseLocationType(typ)
		if loc.ParentID, err = parseNullID(parentID); err != nil {
			return err
		}
		if loc.PrimaryMapImageID, err = parseNullID(imageID); err != nil {
			return err
		}
		if loc.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if loc.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return err
		}
		if deletedAt.Valid {
			t, err := parseTime(deletedAt.String)
			if err != nil {
				return err
			}
			loc.DeletedAt = &t
		}
		snap.Locations = append(snap.Locations, loc)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadItems(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, location_id, name, note, quantity, created_at, updated_at FROM items
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it                       domain.Item
			id, createdAt, updatedAt string
			locationID               sql.NullString
		)
		if err := rows.Scan(&id, &locationID, &it.Name, &it.Note, &it.Quantity, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		if it.ID, err = uuid.Parse(id); err != nil {
			return fmt.Errorf("failed to parse item id %q: %w", id, err)
		}
		if it.LocationID, err = parseNullID(locationID); err != nil {
			return err
		}
		if it.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if it.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return err
		}
		snap.Items = append(snap.Items, it)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadHotspots(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, map_image_id, target_location_id, x, y, label FROM hotspots
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			h                   domain.Hotspot
			id, mapID, targetID string
		)
		if err := rows.Scan(&id, &mapID, &targetID, &h.X, &h.Y, &h.Label); err != nil {
			return fmt.Errorf("failed to scan hotspot: %w", err)
		}
		if h.ID, err = uuid.Parse(id); err != nil {
			return fmt.Errorf("failed to parse hotspot id %q: %w", id, err)
		}
		if h.MapImageID, err = uuid.Parse(mapID); err != nil {
			return fmt.Errorf("failed to parse map image id %q: %w", mapID, err)
		}
		if h.TargetLocationID, err = uuid.Parse(targetID); err != nil {
			return fmt.Errorf("failed to parse target location id %q: %w", targetID, err)
		}
		snap.Hotspots = append(snap.Hotspots, h)
	}
	return rows.Err()
}

func idOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseNullID(s sql.NullString) (*uuid.UUID, error) {
	if !s.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse id %q: %w", s.String, err)
	}
	return &id, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
