// ABOUTME: Database connection management for the development backend
// ABOUTME: Opens SQLite in WAL mode with foreign keys enforced
package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned when a row addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; a single connection avoids "database is locked"
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func newID() string {
	return ulid.Make().String()
}
