package trap

import (
	"context"

	"github.com/KirkDiggler/portal/internal/services/endgame"
)

// Service runs the altered players' sabotage
type Service interface {
	// ActivateInverseTrap arms a trap that fires when the target human scans the altered player
	ActivateInverseTrap(ctx context.Context, input *ActivateInverseTrapInput) (*ActivateInverseTrapOutput, error)

	// ValidateInverseTrap resolves an armed trap when its target scans the owner
	ValidateInverseTrap(ctx context.Context, input *ValidateInverseTrapInput) (*ValidateInverseTrapOutput, error)

	// AttemptMissionTheft invalidates a human's mission when its target is guessed
	AttemptMissionTheft(ctx context.Context, input *AttemptMissionTheftInput) (*AttemptMissionTheftOutput, error)

	// CancelTrap disarms the active trap and refunds its use
	CancelTrap(ctx context.Context, input *CancelTrapInput) (*CancelTrapOutput, error)
}

// EndChecker ends the game when a win condition holds
type EndChecker interface {
	EndIfWon(ctx context.Context) (*endgame.EndIfWonOutput, error)
}
