package event

import (
	"context"

	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Repository defines the interface for the append-only event log
type Repository interface {
	// AppendEvent stores a new event
	AppendEvent(ctx context.Context, input *AppendEventInput) error

	// ListEvents retrieves events newest first
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)

	// DeleteAllEvents clears the log
	DeleteAllEvents(ctx context.Context) error

	// WatchEvents streams events appended after the call; history is not replayed
	WatchEvents(ctx context.Context, input *WatchEventsInput) (*document.Subscription, error)
}
