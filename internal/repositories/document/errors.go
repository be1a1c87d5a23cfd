package document

import "errors"

var (
	// ErrNotFound is returned when a document does not exist
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned when optimistic retries are exhausted
	ErrConflict = errors.New("document changed concurrently, retries exhausted")

	ErrInvalidPath       = errors.New("field path cannot be empty")
	ErrNotArray          = errors.New("field is not an array")
	ErrNotNumber         = errors.New("field is not a number")
	ErrMissingCollection = errors.New("collection cannot be empty")
	ErrMissingID         = errors.New("document ID cannot be empty")
)
