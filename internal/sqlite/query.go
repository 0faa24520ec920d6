package sqlite

import (
	"fmt"
	"strings"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// RunQuery executes a caller-supplied read-only statement with bound
// parameters. Anything whose trimmed text does not begin with SELECT is
// rejected with ErrNotSelect before the statement is even prepared. The
// prefix check is a lexical gate, not a full parse: a SELECT invoking a
// side-effecting function would slip through, which is accepted for an
// internal admin tool.
func (b *Backend) RunQuery(query string, params []any) ([]types.Record, error) {
	if !IsSelect(query) {
		return nil, types.ErrNotSelect
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning query results: %w", err)
	}
	return records, nil
}

// IsSelect reports whether the statement lexically begins with SELECT,
// ignoring leading whitespace and case.
func IsSelect(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < len("select") {
		return false
	}
	return strings.EqualFold(trimmed[:len("select")], "select")
}
