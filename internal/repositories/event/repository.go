package event

import (
	"context"
	"errors"
	"log"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Collection is the document collection holding game events
const Collection = "game_events"

// Config holds configuration for the event repository
type Config struct {
	Store document.Repository
}

type repository struct {
	store document.Repository
}

// New creates an event repository on top of the document store
func New(cfg *Config) (*repository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}
	return &repository{store: cfg.Store}, nil
}

// AppendEvent stores a new event
func (r *repository) AppendEvent(ctx context.Context, input *AppendEventInput) error {
	if input == nil || input.Event == nil || input.Event.ID == "" {
		return errors.New("input and event ID cannot be empty")
	}
	return r.store.Set(ctx, &document.SetInput{
		Collection: Collection,
		ID:         input.Event.ID,
		Data:       input.Event,
	})
}

// ListEvents retrieves events ordered by timestamp descending
func (r *repository) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	list := &document.ListInput{
		Collection: Collection,
		OrderBy:    "timestamp",
		Descending: true,
	}
	if input != nil {
		list.Limit = input.Limit
		if input.Visibility != "" {
			list.Filters = []document.Filter{{Path: "visibility", Value: string(input.Visibility)}}
		}
	}
	events, err := document.ListAs[models.GameEvent](ctx, r.store, list)
	if err != nil {
		return nil, err
	}
	return &ListEventsOutput{Events: events}, nil
}

// DeleteAllEvents clears the log
func (r *repository) DeleteAllEvents(ctx context.Context) error {
	return r.store.DeleteCollection(ctx, &document.DeleteCollectionInput{Collection: Collection})
}

// WatchEvents streams events as they are appended. Stored history is not
// replayed; ListEvents serves the backlog in timestamp order.
func (r *repository) WatchEvents(ctx context.Context, input *WatchEventsInput) (*document.Subscription, error) {
	if input == nil || input.Handler == nil {
		return nil, errors.New("input and handler cannot be nil")
	}
	return r.store.Watch(ctx, &document.WatchInput{
		Collection:   Collection,
		SkipSnapshot: true,
		Handler: func(c *document.Change) {
			if c.Deleted {
				return
			}
			var e models.GameEvent
			if err := c.Decode(&e); err != nil {
				log.Printf("Skipping malformed event %s: %v", c.ID, err)
				return
			}
			input.Handler(&e)
		},
	})
}
