package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homeinv/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot() *domain.Snapshot {
	now := time.Now().UTC().Truncate(time.Second)
	home := domain.Location{
		ID: uuid.New(), Name: "Home", Type: domain.TypeHouse,
		CreatedAt: now, UpdatedAt: now,
	}
	kitchen := domain.Location{
		ID: uuid.New(), ParentID: &home.ID, Name: "Kitchen", Type: domain.TypeRoom,
		SortOrder: 1, CreatedAt: now, UpdatedAt: now,
	}
	note := "spare"
	return &domain.Snapshot{
		Locations: []domain.Location{home, kitchen},
		Items: []domain.Item{{
			ID: uuid.New(), LocationID: &kitchen.ID, Name: "Blender",
			Note: &note, Quantity: 2, CreatedAt: now, UpdatedAt: now,
		}},
		Hotspots: []domain.Hotspot{{
			ID: uuid.New(), MapImageID: uuid.New(), TargetLocationID: kitchen.ID,
			X: 0.25, Y: 0.75,
		}},
	}
}

func TestJSONFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	s, err := NewJSONFileStore(path, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	want := testSnapshot()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Locations, got.Locations)
	assert.Equal(t, want.Items, got.Items)
	assert.Equal(t, want.Hotspots, got.Hotspots)
}

func TestJSONFileStoreSaveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	s, err := NewJSONFileStore(path, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSnapshot()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, loaded))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJSONFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	s, err := NewJSONFileStore(path, testLogger())
	require.NoError(t, err)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Locations)
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Hotspots)
}

func TestJSONFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewJSONFileStore(path, testLogger())
	require.NoError(t, err)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Locations)
}

func TestJSONFileStoreLegacyMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	ctx := context.Background()

	// The legacy format was a bare array of locations.
	legacy := testSnapshot().Locations
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := NewJSONFileStore(path, testLogger())
	require.NoError(t, err)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, legacy, got.Locations)
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Hotspots)

	// The file is rewritten in the current schema immediately.
	upgraded, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(upgraded, &snap))
	assert.Equal(t, legacy, snap.Locations)
}
