package sqlite

import (
	"fmt"
	"os"
)

// Stats reports engine-level aggregates: per-table row counts, database
// file size, and the SQLite version.
func (b *Backend) Stats() (map[string]any, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	names, err := listTableNames(db)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(names))
	for _, name := range names {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(name)).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting rows in %s: %w", name, err)
		}
		counts[name] = count
	}

	var version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return nil, fmt.Errorf("reading sqlite version: %w", err)
	}

	var fileSize int64
	if info, err := os.Stat(b.dbPath); err == nil {
		fileSize = info.Size()
	}

	return map[string]any{
		"tables":         counts,
		"table_count":    len(names),
		"file_size":      fileSize,
		"sqlite_version": version,
	}, nil
}
