package document

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetAs fetches a document and decodes it into a T
func GetAs[T any](ctx context.Context, repo Repository, collection, id string) (*T, error) {
	doc, err := repo.Get(ctx, &GetInput{Collection: collection, ID: id})
	if err != nil {
		return nil, err
	}
	var v T
	if err := doc.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", collection, id, err)
	}
	return &v, nil
}

// ListAs lists documents and decodes each into a T
func ListAs[T any](ctx context.Context, repo Repository, input *ListInput) ([]*T, error) {
	out, err := repo.List(ctx, input)
	if err != nil {
		return nil, err
	}
	items := make([]*T, 0, len(out.Documents))
	for _, doc := range out.Documents {
		var v T
		if err := doc.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", doc.Collection, doc.ID, err)
		}
		items = append(items, &v)
	}
	return items, nil
}

// MutateAs runs fn against the decoded document inside a transaction and
// stores the result. fn may run more than once when writers collide.
func MutateAs[T any](ctx context.Context, repo Repository, collection, id string, fn func(*T) error) (*T, error) {
	var result T
	_, err := repo.Transact(ctx, &TransactInput{
		Collection: collection,
		ID:         id,
		Mutate: func(current []byte) ([]byte, error) {
			var v T
			if err := json.Unmarshal(current, &v); err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", collection, id, err)
			}
			if err := fn(&v); err != nil {
				return nil, err
			}
			result = v
			return json.Marshal(&v)
		},
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateAs applies ops and decodes the updated document into a T
func UpdateAs[T any](ctx context.Context, repo Repository, collection, id string, ops ...Op) (*T, error) {
	doc, err := repo.Update(ctx, &UpdateInput{Collection: collection, ID: id, Ops: ops})
	if err != nil {
		return nil, err
	}
	var v T
	if err := doc.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", collection, id, err)
	}
	return &v, nil
}
