package game_state

import (
	"context"
	"errors"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Collection is the document collection holding the game state
const Collection = "game_state"

// ErrGameStateNotFound is returned before the game has been set up
var ErrGameStateNotFound = errors.New("game state not found")

// Config holds configuration for the game state repository
type Config struct {
	Store document.Repository
}

type repository struct {
	store document.Repository
}

// New creates a game state repository on top of the document store
func New(cfg *Config) (*repository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}
	return &repository{store: cfg.Store}, nil
}

func mapErr(err error) error {
	if errors.Is(err, document.ErrNotFound) {
		return ErrGameStateNotFound
	}
	return err
}

// GetGameState retrieves the current game state
func (r *repository) GetGameState(ctx context.Context) (*models.GameState, error) {
	g, err := document.GetAs[models.GameState](ctx, r.store, Collection, models.GameStateID)
	if err != nil {
		return nil, mapErr(err)
	}
	return g, nil
}

// SaveGameState overwrites the game state
func (r *repository) SaveGameState(ctx context.Context, input *SaveGameStateInput) error {
	if input == nil || input.GameState == nil {
		return errors.New("input and game state cannot be nil")
	}
	input.GameState.PortalLevel = models.ClampPortal(input.GameState.PortalLevel)
	return r.store.Set(ctx, &document.SetInput{
		Collection: Collection,
		ID:         models.GameStateID,
		Data:       input.GameState,
	})
}

// MutateGameState runs a read-modify-write against the game state. The portal
// level is clamped after every mutation.
func (r *repository) MutateGameState(ctx context.Context, input *MutateGameStateInput) (*models.GameState, error) {
	if input == nil || input.Mutate == nil {
		return nil, errors.New("input and mutate func cannot be nil")
	}
	g, err := document.MutateAs(ctx, r.store, Collection, models.GameStateID, func(g *models.GameState) error {
		if err := input.Mutate(g); err != nil {
			return err
		}
		g.PortalLevel = models.ClampPortal(g.PortalLevel)
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return g, nil
}

// AdjustPortal moves the portal level by Delta inside [PortalMin, PortalMax]
func (r *repository) AdjustPortal(ctx context.Context, input *AdjustPortalInput) (*AdjustPortalOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var previous int
	g, err := r.MutateGameState(ctx, &MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			previous = g.PortalLevel
			g.PortalLevel = models.ClampPortal(g.PortalLevel + input.Delta)
			switch input.Role {
			case models.RoleHuman:
				g.HumanFragments++
			case models.RoleAltered:
				g.AlteredSuccesses++
			}
			if input.CountMission {
				g.TotalMissionsCompleted++
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &AdjustPortalOutput{
		Previous:  previous,
		Current:   g.PortalLevel,
		GameState: g,
	}, nil
}

// IncrementCounter atomically bumps a numeric counter
func (r *repository) IncrementCounter(ctx context.Context, input *IncrementCounterInput) (*models.GameState, error) {
	if input == nil || input.Counter == "" {
		return nil, errors.New("input and counter cannot be empty")
	}
	g, err := document.UpdateAs[models.GameState](ctx, r.store, Collection, models.GameStateID,
		document.Increment(string(input.Counter), int64(input.By)),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return g, nil
}

// WatchGameState streams the game state and every later change
func (r *repository) WatchGameState(ctx context.Context, input *WatchGameStateInput) (*document.Subscription, error) {
	if input == nil || input.Handler == nil {
		return nil, errors.New("input and handler cannot be nil")
	}
	return r.store.Watch(ctx, &document.WatchInput{
		Collection: Collection,
		ID:         models.GameStateID,
		Handler:    input.Handler,
	})
}
