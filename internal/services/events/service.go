package events

import (
	"context"
	"log"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/common/uuid"
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	eventRepo "github.com/KirkDiggler/portal/internal/repositories/event"
)

// Config holds the dependencies for the event log
type Config struct {
	EventRepo     eventRepo.Repository
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type service struct {
	eventRepo     eventRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new event log service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.EventRepo == nil {
		return nil, ErrNilEventRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		eventRepo:     cfg.EventRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// Emit appends an event to the log. Private events are kept for the
// organizers but never reach the public feed.
func (s *service) Emit(ctx context.Context, input *EmitInput) (*models.GameEvent, error) {
	if input == nil || input.Message == "" {
		return nil, ErrEmptyMessage
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	event := &models.GameEvent{
		ID:         uuid.Prefixed(s.uuidGenerator, "event"),
		Type:       input.Type,
		Message:    input.Message,
		PlayerID:   input.PlayerID,
		PlayerName: input.PlayerName,
		Visibility: visibility,
		Timestamp:  s.clock.Now(),
		Data:       input.Data,
	}

	if err := s.eventRepo.AppendEvent(ctx, &eventRepo.AppendEventInput{Event: event}); err != nil {
		return nil, err
	}

	if visibility == models.VisibilityPrivate {
		log.Printf("Private event %s: %s", event.Type, event.Message)
	}

	return event, nil
}

// ListRecent returns the newest events first
func (s *service) ListRecent(ctx context.Context, input *ListRecentInput) (*ListRecentOutput, error) {
	limit := DefaultListLimit
	includePrivate := false
	if input != nil {
		if input.Limit > 0 {
			limit = input.Limit
		}
		includePrivate = input.IncludePrivate
	}

	list := &eventRepo.ListEventsInput{Limit: limit}
	if !includePrivate {
		list.Visibility = models.VisibilityPublic
	}

	out, err := s.eventRepo.ListEvents(ctx, list)
	if err != nil {
		return nil, err
	}
	return &ListRecentOutput{Events: out.Events}, nil
}

// Watch streams appended events
func (s *service) Watch(ctx context.Context, input *WatchInput) (*document.Subscription, error) {
	if input == nil || input.Handler == nil {
		return nil, ErrNilHandler
	}
	return s.eventRepo.WatchEvents(ctx, &eventRepo.WatchEventsInput{
		Handler: func(e *models.GameEvent) {
			if e.Visibility == models.VisibilityPrivate && !input.IncludePrivate {
				return
			}
			input.Handler(e)
		},
	})
}

// Clear deletes every event
func (s *service) Clear(ctx context.Context) error {
	return s.eventRepo.DeleteAllEvents(ctx)
}
