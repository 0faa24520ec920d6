package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 200
)

// protectedColumns are server-managed and stripped from caller payloads.
// id is immutable, created_at is set by the schema default, updated_at is
// stamped by UpdateRow.
var protectedColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ListRows returns one page of rows from the table, optionally filtered by
// a case-insensitive substring search over its text-typed columns.
// Rows are ordered by primary key descending (most recent first).
func (b *Backend) ListRows(table string, opts types.ListOptions) (types.RowPage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var page types.RowPage

	db, err := b.conn()
	if err != nil {
		return page, err
	}
	if err := validateTable(db, table); err != nil {
		return page, err
	}
	cols, err := tableColumns(db, table)
	if err != nil {
		return page, err
	}

	opts = normalizeListOptions(opts)

	where, args := likeFilter(cols, opts.Search)

	var total int64
	countQuery := "SELECT COUNT(*) FROM " + quoteIdent(table) + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return page, fmt.Errorf("counting rows in %s: %w", table, err)
	}

	offset := (opts.Page - 1) * opts.Limit
	query := "SELECT * FROM " + quoteIdent(table) + where +
		" ORDER BY " + quoteIdent(primaryKeyColumn(cols)) + " DESC" +
		fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return page, fmt.Errorf("listing rows in %s: %w", table, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return page, fmt.Errorf("scanning rows of %s: %w", table, err)
	}

	totalPages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))
	page = types.RowPage{
		TableName: table,
		Columns:   cols,
		Rows:      records,
		Pagination: types.Pagination{
			Page:       opts.Page,
			Limit:      opts.Limit,
			TotalRows:  total,
			TotalPages: totalPages,
		},
	}
	return page, nil
}

// InsertRow inserts a new row built from the payload keys that match real,
// non-protected columns. Unknown keys are silently dropped. Returns
// ErrEmptyPayload when nothing survives filtering, otherwise the generated
// primary key and the fields actually inserted.
func (b *Backend) InsertRow(table string, payload types.Record) (int64, types.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return 0, nil, err
	}
	if err := validateTable(db, table); err != nil {
		return 0, nil, err
	}
	cols, err := tableColumns(db, table)
	if err != nil {
		return 0, nil, err
	}

	keys, inserted := filterPayload(payload, cols)
	if len(keys) == 0 {
		return 0, nil, types.ErrEmptyPayload
	}

	quoted := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		quoted[i] = quoteIdent(k)
		marks[i] = "?"
		args[i] = inserted[k]
	}

	query := "INSERT INTO " + quoteIdent(table) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	res, err := db.Exec(query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("inserting into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil, fmt.Errorf("reading insert id for %s: %w", table, err)
	}
	return id, inserted, nil
}

// UpdateRow applies the filtered payload to the row with the given primary
// key, stamping updated_at when the table has one. Returns ErrNotFound when
// no row matched.
func (b *Backend) UpdateRow(table, id string, payload types.Record) (types.Record, int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return nil, 0, err
	}
	if err := validateTable(db, table); err != nil {
		return nil, 0, err
	}
	cols, err := tableColumns(db, table)
	if err != nil {
		return nil, 0, err
	}

	keys, updated := filterPayload(payload, cols)
	if len(keys) == 0 {
		return nil, 0, types.ErrEmptyPayload
	}

	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+2)
	for _, k := range keys {
		sets = append(sets, quoteIdent(k)+" = ?")
		args = append(args, updated[k])
	}
	if hasColumn(cols, "updated_at") {
		sets = append(sets, `"updated_at" = ?`)
		args = append(args, time.Now().UTC().Format(time.RFC3339))
	}
	args = append(args, id)

	query := "UPDATE " + quoteIdent(table) + " SET " + strings.Join(sets, ", ") +
		" WHERE " + quoteIdent(primaryKeyColumn(cols)) + " = ?"
	res, err := db.Exec(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("updating %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, 0, fmt.Errorf("reading affected rows for %s: %w", table, err)
	}
	if affected == 0 {
		return nil, 0, types.ErrNotFound
	}
	return updated, affected, nil
}

// DeleteRow removes the row with the given primary key. Returns ErrNotFound
// when no row matched.
func (b *Backend) DeleteRow(table, id string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return 0, err
	}
	if err := validateTable(db, table); err != nil {
		return 0, err
	}
	cols, err := tableColumns(db, table)
	if err != nil {
		return 0, err
	}

	query := "DELETE FROM " + quoteIdent(table) +
		" WHERE " + quoteIdent(primaryKeyColumn(cols)) + " = ?"
	res, err := db.Exec(query, id)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows for %s: %w", table, err)
	}
	if affected == 0 {
		return 0, types.ErrNotFound
	}
	return affected, nil
}

// normalizeListOptions coerces page and limit to sane positive values.
// Malformed or missing values fall back to defaults rather than erroring.
func normalizeListOptions(opts types.ListOptions) types.ListOptions {
	if opts.Page < 1 {
		opts.Page = DefaultPage
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}
	opts.Search = strings.TrimSpace(opts.Search)
	return opts
}

// likeFilter builds a WHERE clause matching term as a substring in any
// text-typed column. Returns an empty clause when term is blank or the
// table has no text columns.
func likeFilter(cols []types.ColumnDescriptor, term string) (string, []any) {
	if term == "" {
		return "", nil
	}
	var conds []string
	var args []any
	for _, col := range cols {
		if !isTextType(col.Type) {
			continue
		}
		conds = append(conds, quoteIdent(col.Name)+" LIKE ?")
		args = append(args, "%"+term+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " OR "), args
}

// isTextType reports whether a declared column type holds text, per
// SQLite's affinity rules.
func isTextType(declared string) bool {
	u := strings.ToUpper(declared)
	return strings.Contains(u, "TEXT") ||
		strings.Contains(u, "CHAR") ||
		strings.Contains(u, "CLOB")
}

// primaryKeyColumn returns the table's primary key column, or "rowid" when
// the table declares none.
func primaryKeyColumn(cols []types.ColumnDescriptor) string {
	for _, col := range cols {
		if col.PrimaryKey {
			return col.Name
		}
	}
	return "rowid"
}

// hasColumn reports whether the column set contains the named column.
func hasColumn(cols []types.ColumnDescriptor, name string) bool {
	for _, col := range cols {
		if col.Name == name {
			return true
		}
	}
	return false
}

// filterPayload intersects the payload keys with the table's real columns,
// dropping protected ones. Keys come back sorted so the generated SQL is
// deterministic.
func filterPayload(payload types.Record, cols []types.ColumnDescriptor) ([]string, types.Record) {
	filtered := make(types.Record)
	var keys []string
	for _, col := range cols {
		if protectedColumns[col.Name] {
			continue
		}
		if val, ok := payload[col.Name]; ok {
			filtered[col.Name] = val
			keys = append(keys, col.Name)
		}
	}
	sort.Strings(keys)
	return keys, filtered
}

// scanRecords drains a result set into untyped field maps. BLOB values come
// back from the driver as []byte and are converted to strings so the maps
// JSON-encode cleanly.
func scanRecords(rows *sql.Rows) ([]types.Record, error) {
	colNames, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := []types.Record{}
	for rows.Next() {
		values := make([]any, len(colNames))
		ptrs := make([]any, len(colNames))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(types.Record, len(colNames))
		for i, name := range colNames {
			if bs, ok := values[i].([]byte); ok {
				rec[name] = string(bs)
			} else {
				rec[name] = values[i]
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
