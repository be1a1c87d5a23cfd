package events

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Service writes and reads the game feed
type Service interface {
	// Emit appends an event to the log
	Emit(ctx context.Context, input *EmitInput) (*models.GameEvent, error)

	// ListRecent returns the newest events first
	ListRecent(ctx context.Context, input *ListRecentInput) (*ListRecentOutput, error)

	// Watch streams appended events
	Watch(ctx context.Context, input *WatchInput) (*document.Subscription, error)

	// Clear deletes every event; only a game reset does this
	Clear(ctx context.Context) error
}
