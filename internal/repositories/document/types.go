package document

import (
	"encoding/json"
)

// Document is a stored JSON object
type Document struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

// Decode unmarshals the document body into target
func (d *Document) Decode(target any) error {
	return json.Unmarshal(d.Data, target)
}

// GetInput contains parameters for fetching a document
type GetInput struct {
	Collection string
	ID         string
}

// Filter is an equality predicate on a field path (gjson syntax)
type Filter struct {
	Path  string
	Value any
}

// ListInput contains parameters for listing a collection
type ListInput struct {
	Collection string
	Filters    []Filter

	// OrderBy is a field path; empty orders by document ID
	OrderBy    string
	Descending bool

	// Limit of zero returns every match
	Limit int
}

// ListOutput contains the matching documents
type ListOutput struct {
	Documents []*Document
}

// SetInput contains parameters for writing a whole document
type SetInput struct {
	Collection string
	ID         string

	// Data is marshalled to JSON unless it is already json.RawMessage
	Data any
}

// UpdateInput contains parameters for a partial update
type UpdateInput struct {
	Collection string
	ID         string
	Ops        []Op
}

// MutateFunc receives the current body (nil when absent) and returns the new one
type MutateFunc func(current []byte) ([]byte, error)

// TransactInput contains parameters for a read-modify-write
type TransactInput struct {
	Collection string
	ID         string

	// AllowCreate lets Mutate run against a missing document
	AllowCreate bool

	Mutate MutateFunc
}

// DeleteInput contains parameters for deleting a document
type DeleteInput struct {
	Collection string
	ID         string
}

// DeleteCollectionInput contains parameters for deleting a collection
type DeleteCollectionInput struct {
	Collection string
}

// Change is delivered to watchers for every write
type Change struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data,omitempty"`
	Deleted    bool            `json:"deleted"`
}

// Decode unmarshals the changed body into target
func (c *Change) Decode(target any) error {
	return json.Unmarshal(c.Data, target)
}

// WatchInput contains parameters for a watch. An empty ID watches the whole collection.
type WatchInput struct {
	Collection string
	ID         string
	Handler    func(*Change)

	// SkipSnapshot delivers only changes made after the subscription
	SkipSnapshot bool
}
