package types

// SearchResult is one row matched by the global search, tagged with the
// table it came from. Ephemeral; never persisted.
type SearchResult struct {
	SourceTable string `json:"source_table"`
	Row         Record `json:"row"`
}
