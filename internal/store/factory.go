package store

import (
	"fmt"
	"log/slog"

	"github.com/vbonduro/homeinv/internal/db"
)

// Options selects and configures a snapshot backend.
type Options struct {
	// Backend is one of "json", "sqlite" or "memory".
	Backend string
	// Path is the JSON document path (json backend).
	Path string
	// DBPath is the SQLite database path (sqlite backend).
	DBPath string
}

// New builds the configured Store. The returned cleanup func releases backend
// resources; callers must defer it.
func New(opts Options, logger *slog.Logger) (Store, func(), error) {
	switch opts.Backend {
	case "", "json":
		s, err := NewJSONFileStore(opts.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "sqlite":
		database, err := db.Open(opts.DBPath)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		return NewSQLiteStore(database, logger), cleanup, nil
	case "memory":
		return NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
