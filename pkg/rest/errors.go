package rest

import "errors"

// Error kinds surfaced by the query builder and handlers. Handlers map
// these to HTTP statuses; anything else coming out of the storage engine
// is a 500 carrying the engine's message.
var (
	// ErrInvalidIdentifier marks a table or column name that failed the
	// identifier allow-list.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrEmptyPayload marks an insert or update with no fields.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrMalformedBody marks a request body that is not a JSON object.
	ErrMalformedBody = errors.New("malformed body")

	// ErrNotFound marks an update or delete that affected zero rows.
	ErrNotFound = errors.New("record not found")
)
