package player

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// SavePlayer creates or overwrites a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// ListPlayers retrieves every player, optionally only those still in play
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// MutatePlayer runs a read-modify-write against one player
	MutatePlayer(ctx context.Context, input *MutatePlayerInput) (*models.Player, error)

	// UpdatePlayer applies field-path operations to one player
	UpdatePlayer(ctx context.Context, input *UpdatePlayerInput) (*models.Player, error)

	// DeletePlayer removes a player
	DeletePlayer(ctx context.Context, input *DeletePlayerInput) error

	// DeleteAllPlayers removes every player
	DeleteAllPlayers(ctx context.Context) error

	// WatchPlayers streams player changes
	WatchPlayers(ctx context.Context, input *WatchPlayersInput) (*document.Subscription, error)
}
