package event

import (
	"github.com/KirkDiggler/portal/internal/models"
)

type AppendEventInput struct {
	Event *models.GameEvent
}

type ListEventsInput struct {
	Limit int

	// Visibility restricts the result when set
	Visibility models.Visibility
}

type ListEventsOutput struct {
	Events []*models.GameEvent
}

type WatchEventsInput struct {
	Handler func(*models.GameEvent)
}
