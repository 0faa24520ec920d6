package sqlite

import (
	"fmt"
	"strings"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// DefaultSearchLimit caps the combined global search result set when the
// caller does not supply a limit.
const DefaultSearchLimit = 50

// searchTargets is the fixed set of tables and columns covered by the
// global search. A dynamic fan-out over the whole schema would be slow and
// noisy; the searchable set is an explicit editorial choice instead.
// Enumeration order is part of the contract: results are deterministic for
// unchanged data.
var searchTargets = []struct {
	table   string
	columns []string
}{
	{"patients", []string{"full_name", "phone", "email", "notes"}},
	{"doctors", []string{"full_name", "phone", "specialty"}},
	{"appointments", []string{"reason", "status"}},
	{"transactions", []string{"description"}},
	{"users", []string{"username", "display_name"}},
}

// Search fans the query out across the searchable tables and unions the
// matches, each tagged with its source table, truncated at limit. Within a
// table, matches come back newest first (id descending).
// Returns ErrEmptyQuery for a blank query.
func (b *Backend) Search(query string, limit int) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	results := []types.SearchResult{}
	for _, target := range searchTargets {
		if len(results) >= limit {
			break
		}

		conds := make([]string, len(target.columns))
		args := make([]any, len(target.columns))
		for i, col := range target.columns {
			conds[i] = quoteIdent(col) + " LIKE ?"
			args[i] = "%" + query + "%"
		}

		remaining := limit - len(results)
		stmt := "SELECT * FROM " + quoteIdent(target.table) +
			" WHERE " + strings.Join(conds, " OR ") +
			fmt.Sprintf(" ORDER BY id DESC LIMIT %d", remaining)

		rows, err := db.Query(stmt, args...)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", target.table, err)
		}
		records, err := scanRecords(rows)
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("scanning search results from %s: %w", target.table, err)
		}

		for _, rec := range records {
			results = append(results, types.SearchResult{
				SourceTable: target.table,
				Row:         rec,
			})
		}
	}
	return results, nil
}
