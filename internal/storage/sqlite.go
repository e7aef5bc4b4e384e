package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SqliteConfig carries the connection parameters for the embedded backend.
type SqliteConfig struct {
	// Path to the database file, or ":memory:" for an ephemeral in-process
	// database (used by tests and by the router test setup pattern borrowed
	// from original_source/.../src/router.rs).
	Path string
}

// NewSqlite opens the embedded single-file backend. SQLite allows only one
// writer at a time; rather than fight that with a large pool (which just
// serializes at the database-file lock and wastes connections), the pool is
// pinned to a single connection so gorm's own connection queueing does the
// serialization instead of the OS-level file lock contending across many
// goroutine-held connections.
func NewSqlite(cfg SqliteConfig) (Store, error) {
	path := cfg.Path
	if path == "" {
		path = "shortener.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("storage: sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return newGormStore(db)
}
