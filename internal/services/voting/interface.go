package voting

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/endgame"
)

// Service runs elimination votes. Sessions are opened by a player or by the
// mission counter crossing a meeting threshold; both share one state machine.
type Service interface {
	// StartVotingSession opens a vote called by a player
	StartVotingSession(ctx context.Context, input *StartVotingSessionInput) (*StartVotingSessionOutput, error)

	// CheckMeetingThreshold opens a meeting when enough missions are done
	CheckMeetingThreshold(ctx context.Context) (*CheckMeetingThresholdOutput, error)

	// CastVote records or replaces a voter's choice
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// FinalizeVotingSession tallies the votes and eliminates the loser
	FinalizeVotingSession(ctx context.Context, input *FinalizeVotingSessionInput) (*FinalizeVotingSessionOutput, error)

	// CancelVotingSession closes a session without a result
	CancelVotingSession(ctx context.Context, input *CancelVotingSessionInput) (*models.VotingSession, error)

	// GetActiveVotingSession returns the open session, or nil
	GetActiveVotingSession(ctx context.Context) (*models.VotingSession, error)

	// GetVotingSession returns a session by ID
	GetVotingSession(ctx context.Context, input *GetVotingSessionInput) (*models.VotingSession, error)

	// CloseExpiredSessions finalizes an active session past its deadline
	CloseExpiredSessions(ctx context.Context) (*CloseExpiredSessionsOutput, error)
}

// EndChecker ends the game when a win condition holds
type EndChecker interface {
	EndIfWon(ctx context.Context) (*endgame.EndIfWonOutput, error)
}
