package types

// TableDescriptor identifies one user table discovered in the live schema.
type TableDescriptor struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count,omitempty"`
}

// ColumnDescriptor is one column of a table as reported by the engine's
// metadata. DefaultValue is the declared SQL default, nil when absent.
type ColumnDescriptor struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	NotNull      bool   `json:"not_null"`
	DefaultValue any    `json:"default_value"`
	PrimaryKey   bool   `json:"primary_key"`
}

// Record is one row represented as an untyped field map. Keys are column
// names; values are whatever the driver produced.
type Record = map[string]any

// ListOptions selects a page of rows, optionally filtered by a free-text
// search over the table's text columns.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

// Pagination describes the page a RowPage holds.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalRows  int64 `json:"total_rows"`
	TotalPages int   `json:"total_pages"`
}

// RowPage is one page of rows from a table along with its column metadata.
type RowPage struct {
	TableName  string             `json:"table_name"`
	Columns    []ColumnDescriptor `json:"columns"`
	Rows       []Record           `json:"rows"`
	Pagination Pagination         `json:"pagination"`
}
