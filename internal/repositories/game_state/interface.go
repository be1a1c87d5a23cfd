package game_state

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Repository defines the interface for the singleton game state document
type Repository interface {
	// GetGameState retrieves the current game state
	GetGameState(ctx context.Context) (*models.GameState, error)

	// SaveGameState overwrites the game state
	SaveGameState(ctx context.Context, input *SaveGameStateInput) error

	// MutateGameState runs a read-modify-write against the game state
	MutateGameState(ctx context.Context, input *MutateGameStateInput) (*models.GameState, error)

	// AdjustPortal moves the portal by a delta, clamped, and credits the role's counter
	AdjustPortal(ctx context.Context, input *AdjustPortalInput) (*AdjustPortalOutput, error)

	// IncrementCounter atomically bumps a numeric counter
	IncrementCounter(ctx context.Context, input *IncrementCounterInput) (*models.GameState, error)

	// WatchGameState streams the game state and every later change
	WatchGameState(ctx context.Context, input *WatchGameStateInput) (*document.Subscription, error)
}
