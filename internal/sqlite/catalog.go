package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// The catalog reads the database's live metadata on every call. Nothing is
// cached: the schema can change between calls (migrations, restores) and a
// stale whitelist would defeat the injection defense the catalog exists for.

// ListTables returns the user tables in sqlite_master, excluding the
// engine's reserved sqlite_* tables, with a row count per table.
func (b *Backend) ListTables() ([]types.TableDescriptor, error) {
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

	tables := make([]types.TableDescriptor, 0, len(names))
	for _, name := range names {
		var count int64
		// Safe to interpolate: name came out of sqlite_master just above.
		if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(name)).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting rows in %s: %w", name, err)
		}
		tables = append(tables, types.TableDescriptor{Name: name, RowCount: count})
	}
	return tables, nil
}

// Columns returns the column metadata for the named table, or
// ErrInvalidTable if it does not exist in the live schema.
func (b *Backend) Columns(table string) ([]types.ColumnDescriptor, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	if err := validateTable(db, table); err != nil {
		return nil, err
	}
	return tableColumns(db, table)
}

// IsValidTable reports whether the named table currently exists in the
// live schema. Re-checked per call, never cached.
func (b *Backend) IsValidTable(table string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return false, err
	}
	err = validateTable(db, table)
	if err == types.ErrInvalidTable {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// listTableNames reads the user table names from sqlite_master.
func listTableNames(db *sql.DB) ([]string, error) {
	rows, err := db.Query(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("reading sqlite_master: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// validateTable is the single choke point through which every
// caller-supplied table name must pass before being interpolated into SQL.
// Returns ErrInvalidTable when the name is absent from sqlite_master.
func validateTable(db *sql.DB, table string) error {
	if table == "" || strings.HasPrefix(table, "sqlite_") {
		return types.ErrInvalidTable
	}
	var one int
	err := db.QueryRow(
		"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&one)
	if err == sql.ErrNoRows {
		return types.ErrInvalidTable
	}
	if err != nil {
		return fmt.Errorf("checking table %q: %w", table, err)
	}
	return nil
}

// tableColumns reads PRAGMA table_info for a table whose name has already
// been validated.
func tableColumns(db *sql.DB, table string) ([]types.ColumnDescriptor, error) {
	rows, err := db.Query("SELECT name, type, \"notnull\", dflt_value, pk FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("reading table_info for %s: %w", table, err)
	}
	defer rows.Close()

	var cols []types.ColumnDescriptor
	for rows.Next() {
		var (
			col     types.ColumnDescriptor
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		if dflt.Valid {
			col.DefaultValue = dflt.String
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, types.ErrInvalidTable
	}
	return cols, nil
}

// quoteIdent wraps an identifier in double quotes. Only ever applied to
// names that came out of the live schema or passed validateTable.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
