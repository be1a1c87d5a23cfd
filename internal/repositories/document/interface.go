package document

import (
	"context"
)

// Repository is a collection/document store. Every document is a JSON
// object addressed by (collection, id).
type Repository interface {
	// Get retrieves one document
	Get(ctx context.Context, input *GetInput) (*Document, error)

	// List returns the documents of a collection, optionally filtered, ordered and limited
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Set creates or overwrites a document
	Set(ctx context.Context, input *SetInput) error

	// Update applies field-path operations to an existing document atomically
	Update(ctx context.Context, input *UpdateInput) (*Document, error)

	// Transact runs a read-modify-write against one document with optimistic concurrency
	Transact(ctx context.Context, input *TransactInput) (*Document, error)

	// Delete removes one document
	Delete(ctx context.Context, input *DeleteInput) error

	// DeleteCollection removes every document of a collection
	DeleteCollection(ctx context.Context, input *DeleteCollectionInput) error

	// Watch streams the current value and every later change until the subscription is closed
	Watch(ctx context.Context, input *WatchInput) (*Subscription, error)
}
