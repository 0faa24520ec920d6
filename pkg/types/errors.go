package types

import "errors"

// Standard errors returned by the storage backend. The HTTP layer classifies
// these with errors.Is to pick a status code; anything unrecognized is an
// internal error.
var (
	// ErrInvalidTable reports a table name that does not exist in the live
	// schema. Raised before any SQL touches the name.
	ErrInvalidTable = errors.New("invalid table name")

	// ErrEmptyPayload reports an insert or update whose payload is empty
	// after filtering against the table's real columns.
	ErrEmptyPayload = errors.New("no valid fields in payload")

	// ErrEmptyQuery reports a blank search query.
	ErrEmptyQuery = errors.New("search query must not be empty")

	// ErrNotFound reports a well-formed request targeting a row that does
	// not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotSelect reports a raw-query statement that does not begin with
	// SELECT.
	ErrNotSelect = errors.New("only SELECT statements are allowed")

	// ErrDetached reports an operation on a backend that is not attached
	// to a database.
	ErrDetached = errors.New("backend is not attached")

	// ErrAlreadyAttached reports a second Attach on a live backend.
	ErrAlreadyAttached = errors.New("backend is already attached")
)
