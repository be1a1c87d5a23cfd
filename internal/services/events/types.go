package events

import (
	"github.com/KirkDiggler/portal/internal/models"
)

// DefaultListLimit is used when ListRecent is called without a limit
const DefaultListLimit = 50

// EmitInput describes an event to append
type EmitInput struct {
	Type       models.EventType
	Message    string
	PlayerID   string
	PlayerName string

	// Visibility defaults to public
	Visibility models.Visibility

	Data map[string]string
}

// ListRecentInput contains parameters for reading the feed
type ListRecentInput struct {
	Limit int

	// IncludePrivate also returns events hidden from the public feed
	IncludePrivate bool
}

// ListRecentOutput contains the events, newest first
type ListRecentOutput struct {
	Events []*models.GameEvent
}

// WatchInput contains parameters for streaming the feed
type WatchInput struct {
	IncludePrivate bool
	Handler        func(*models.GameEvent)
}
