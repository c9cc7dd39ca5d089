// Package sorstore persists decoded SOR records to a SQLite database for
// trending loss and reflectance across repeated tests of the same fiber run.
package sorstore

import (
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a SQLite connection opened against the sor_run/sor_key_event
// schema, with the same WAL/busy-timeout pragmas applied regardless of
// whether the file already existed.
type DB struct {
	*sql.DB
}

// applyPragmas sets the SQLite pragmas this package relies on for safe
// concurrent access from a CLI that may be invoked repeatedly against the
// same database file.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %q: %w", p, err)
		}
	}
	return nil
}

// Open opens (creating if necessary) a SQLite database at path, applies the
// pragmas, and migrates it to the latest schema version.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	db := &DB{sqlDB}
	if err := applyPragmas(sqlDB); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
