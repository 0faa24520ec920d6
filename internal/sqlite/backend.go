// Package sqlite implements the clinichub storage backend: a file-backed
// SQLite database holding the clinic's operational tables, administered
// generically through live schema metadata rather than per-table structs.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// DatabaseFile is the name of the SQLite database inside DataDir.
const DatabaseFile = "clinic.db"

// Backend wraps the SQLite database and exposes the catalog, row, search,
// and backup operations. All state lives in the database; the struct itself
// only guards the attach/detach lifecycle.
type Backend struct {
	mu        sync.RWMutex
	attached  bool
	config    types.Config
	db        *sql.DB
	dbPath    string
	backupDir string
}

// NewBackend creates an unattached backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database in config.DataDir, applies the
// schema, and prepares the backup directory.
// Returns ErrAlreadyAttached if called twice without Detach.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	backupDir := config.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(dataDir, "backups")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL()); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	b.db = db
	b.dbPath = dbPath
	b.backupDir = backupDir
	b.config = config
	b.attached = true

	return nil
}

// Detach closes the database. Idempotent; after Detach all operations
// return ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// conn returns the live database handle, or ErrDetached.
// Callers must hold b.mu (read or write).
func (b *Backend) conn() (*sql.DB, error) {
	if !b.attached || b.db == nil {
		return nil, types.ErrDetached
	}
	return b.db, nil
}
