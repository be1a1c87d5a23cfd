package endgame

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
)

// Service decides when the game is over and records how it ended
type Service interface {
	// CheckGameEnd evaluates the win conditions without changing anything
	CheckGameEnd(ctx context.Context) (*CheckGameEndOutput, error)

	// TriggerGameEnd ends the game and snapshots statistics; repeated calls are no-ops
	TriggerGameEnd(ctx context.Context, input *TriggerGameEndInput) (*TriggerGameEndOutput, error)

	// EndIfWon runs CheckGameEnd and, on a win, TriggerGameEnd
	EndIfWon(ctx context.Context) (*EndIfWonOutput, error)

	// GetEndGameStats returns the snapshot of an ended game
	GetEndGameStats(ctx context.Context) (*models.EndGameStats, error)
}
