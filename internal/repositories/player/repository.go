package player

import (
	"context"
	"errors"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Collection is the document collection holding players
const Collection = "players"

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the player repository
type Config struct {
	Store document.Repository
}

type repository struct {
	store document.Repository
}

// New creates a player repository on top of the document store
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
		return ErrPlayerNotFound
	}
	return err
}

// SavePlayer persists a player
func (r *repository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}
	if input.Player.ID == "" {
		return errors.New("player ID cannot be empty")
	}
	return r.store.Set(ctx, &document.SetInput{
		Collection: Collection,
		ID:         input.Player.ID,
		Data:       input.Player,
	})
}

// GetPlayer retrieves a player by ID
func (r *repository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}
	p, err := document.GetAs[models.Player](ctx, r.store, Collection, input.PlayerID)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// ListPlayers retrieves players ordered by ID
func (r *repository) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	list := &document.ListInput{Collection: Collection}
	if input != nil {
		if input.ActiveOnly {
			list.Filters = append(list.Filters, document.Filter{Path: "isEliminated", Value: false})
		}
		if input.Role != "" {
			list.Filters = append(list.Filters, document.Filter{Path: "role", Value: string(input.Role)})
		}
	}

	players, err := document.ListAs[models.Player](ctx, r.store, list)
	if err != nil {
		return nil, err
	}
	return &ListPlayersOutput{Players: players}, nil
}

// MutatePlayer runs a read-modify-write against one player
func (r *repository) MutatePlayer(ctx context.Context, input *MutatePlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" || input.Mutate == nil {
		return nil, errors.New("input, player ID and mutate func cannot be empty")
	}
	p, err := document.MutateAs(ctx, r.store, Collection, input.PlayerID, input.Mutate)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// UpdatePlayer applies field-path operations to one player
func (r *repository) UpdatePlayer(ctx context.Context, input *UpdatePlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}
	p, err := document.UpdateAs[models.Player](ctx, r.store, Collection, input.PlayerID, input.Ops...)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// DeletePlayer removes a player
func (r *repository) DeletePlayer(ctx context.Context, input *DeletePlayerInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}
	return r.store.Delete(ctx, &document.DeleteInput{Collection: Collection, ID: input.PlayerID})
}

// DeleteAllPlayers removes every player
func (r *repository) DeleteAllPlayers(ctx context.Context) error {
	return r.store.DeleteCollection(ctx, &document.DeleteCollectionInput{Collection: Collection})
}

// WatchPlayers streams player changes
func (r *repository) WatchPlayers(ctx context.Context, input *WatchPlayersInput) (*document.Subscription, error) {
	if input == nil || input.Handler == nil {
		return nil, errors.New("input and handler cannot be nil")
	}
	return r.store.Watch(ctx, &document.WatchInput{
		Collection: Collection,
		ID:         input.PlayerID,
		Handler:    input.Handler,
	})
}
