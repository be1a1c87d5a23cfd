package suspicion

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/portal/internal/common/identity"
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	"github.com/KirkDiggler/portal/internal/services/events"
)

// Service keeps each player's private suspect list
type Service interface {
	AddSuspect(ctx context.Context, input *SuspectInput) (*SuspectOutput, error)
	RemoveSuspect(ctx context.Context, input *SuspectInput) (*SuspectOutput, error)
	ListSuspects(ctx context.Context, input *ListSuspectsInput) (*ListSuspectsOutput, error)
}

type SuspectInput struct {
	PlayerID  string
	SuspectID string
}

type SuspectOutput struct {
	Suspicions []string
	Message    string
}

type ListSuspectsInput struct {
	PlayerID string
}

type ListSuspectsOutput struct {
	Suspects []*models.Player
}

type Config struct {
	PlayerRepo playerRepo.Repository
	Events     events.Service
}

type service struct {
	playerRepo playerRepo.Repository
	events     events.Service
}

func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.Events == nil {
		return nil, ErrNilEvents
	}
	return &service{playerRepo: cfg.PlayerRepo, events: cfg.Events}, nil
}

func (s *service) load(ctx context.Context, input *SuspectInput) (*models.Player, *models.Player, error) {
	if input == nil {
		return nil, nil, ErrPlayerNotFound
	}
	playerID := identity.Normalize(input.PlayerID)
	suspectID := identity.Normalize(input.SuspectID)

	suspect, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: suspectID})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, nil, ErrSuspectNotFound
		}
		return nil, nil, err
	}
	if suspectID == playerID {
		return nil, nil, ErrSelfSuspect
	}

	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: playerID})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, nil, ErrPlayerNotFound
		}
		return nil, nil, err
	}
	return player, suspect, nil
}

// AddSuspect appends to the player's suspect list and announces it publicly
func (s *service) AddSuspect(ctx context.Context, input *SuspectInput) (*SuspectOutput, error) {
	player, suspect, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	if player.Suspects(suspect.ID) {
		return nil, fmt.Errorf("%s is %w", suspect.Name, ErrAlreadySuspect)
	}

	updated, err := s.playerRepo.UpdatePlayer(ctx, &playerRepo.UpdatePlayerInput{
		PlayerID: player.ID,
		Ops:      []document.Op{document.ArrayUnion("suspicions", suspect.ID)},
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.events.Emit(ctx, &events.EmitInput{
		Type:       models.EventSuspicionAdded,
		Message:    fmt.Sprintf("%s now suspects %s", player.Name, suspect.Name),
		PlayerID:   suspect.ID,
		PlayerName: suspect.Name,
		Data:       map[string]string{"by": player.ID},
	}); err != nil {
		return nil, err
	}

	return &SuspectOutput{
		Suspicions: updated.Suspicions,
		Message:    fmt.Sprintf("%s added to your suspects", suspect.Name),
	}, nil
}

// RemoveSuspect drops a suspect without an announcement
func (s *service) RemoveSuspect(ctx context.Context, input *SuspectInput) (*SuspectOutput, error) {
	player, suspect, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	if !player.Suspects(suspect.ID) {
		return nil, ErrNotSuspect
	}

	updated, err := s.playerRepo.UpdatePlayer(ctx, &playerRepo.UpdatePlayerInput{
		PlayerID: player.ID,
		Ops:      []document.Op{document.ArrayRemove("suspicions", suspect.ID)},
	})
	if err != nil {
		return nil, err
	}

	return &SuspectOutput{
		Suspicions: updated.Suspicions,
		Message:    fmt.Sprintf("%s removed from your suspects", suspect.Name),
	}, nil
}

// ListSuspects resolves the suspect list to player records, skipping deleted players
func (s *service) ListSuspects(ctx context.Context, input *ListSuspectsInput) (*ListSuspectsOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotFound
	}
	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: identity.Normalize(input.PlayerID)})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	out := &ListSuspectsOutput{Suspects: make([]*models.Player, 0, len(player.Suspicions))}
	for _, id := range player.Suspicions {
		p, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: id})
		if err != nil {
			if errors.Is(err, playerRepo.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		out.Suspects = append(out.Suspects, p)
	}
	return out, nil
}
