package game

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/suspicion"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
)

// Service is the single entry point used by the front ends. Every mutating
// call is applied in order by one goroutine; reads go straight to the store.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/portal/internal/services/game Service
type Service interface {
	// Start runs the command loop until Stop or ctx is done
	Start(ctx context.Context) error

	// Stop ends the command loop and waits for it to exit
	Stop()

	// Login resolves a scanned or typed player code to a player
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ValidateScan checks a scanned badge against the scanner's mission
	ValidateScan(ctx context.Context, input *mission.ValidateMissionInput) (*mission.ValidateMissionOutput, error)

	// CreateMission builds one mission for a player
	CreateMission(ctx context.Context, input *mission.CreateMissionInput) (*mission.CreateMissionOutput, error)

	// CreateMissionQueue assigns a player one mission per tier
	CreateMissionQueue(ctx context.Context, input *mission.CreateMissionQueueInput) (*mission.CreateMissionQueueOutput, error)

	// ActivateInverseTrap arms an altered player's inverse trap
	ActivateInverseTrap(ctx context.Context, input *trap.ActivateInverseTrapInput) (*trap.ActivateInverseTrapOutput, error)

	// AttemptMissionTheft lets an altered player guess a human's target
	AttemptMissionTheft(ctx context.Context, input *trap.AttemptMissionTheftInput) (*trap.AttemptMissionTheftOutput, error)

	// CancelTrap disarms the active trap and refunds it
	CancelTrap(ctx context.Context, input *trap.CancelTrapInput) (*trap.CancelTrapOutput, error)

	// StartVoting opens a vote called by a player
	StartVoting(ctx context.Context, input *voting.StartVotingSessionInput) (*voting.StartVotingSessionOutput, error)

	// CastVote records a vote
	CastVote(ctx context.Context, input *voting.CastVoteInput) (*voting.CastVoteOutput, error)

	// FinalizeVoting closes a vote and applies its result
	FinalizeVoting(ctx context.Context, input *voting.FinalizeVotingSessionInput) (*voting.FinalizeVotingSessionOutput, error)

	// CancelVoting closes a vote without a result
	CancelVoting(ctx context.Context, input *voting.CancelVotingSessionInput) (*models.VotingSession, error)

	// CloseExpiredVotes finalizes votes past their deadline
	CloseExpiredVotes(ctx context.Context) (*voting.CloseExpiredSessionsOutput, error)

	// AddSuspect adds a player to a suspect list
	AddSuspect(ctx context.Context, input *suspicion.SuspectInput) (*suspicion.SuspectOutput, error)

	// RemoveSuspect removes a player from a suspect list
	RemoveSuspect(ctx context.Context, input *suspicion.SuspectInput) (*suspicion.SuspectOutput, error)

	// ListSuspects resolves a suspect list
	ListSuspects(ctx context.Context, input *suspicion.ListSuspectsInput) (*suspicion.ListSuspectsOutput, error)

	// GetGameState returns the shared game document
	GetGameState(ctx context.Context) (*models.GameState, error)

	// GetPlayer returns one player
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// ListPlayers returns every player
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// ListEvents returns the newest events first
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)

	// GetEndGameStats returns the statistics of an ended game
	GetEndGameStats(ctx context.Context) (*models.EndGameStats, error)

	// GetActiveVotingSession returns the open vote, or nil
	GetActiveVotingSession(ctx context.Context) (*models.VotingSession, error)

	// WatchGameState streams the game document
	WatchGameState(ctx context.Context, handler func(*models.GameState)) (*document.Subscription, error)

	// WatchEvents streams events appended after the call. ListEvents serves the backlog.
	WatchEvents(ctx context.Context, input *WatchEventsInput) (*document.Subscription, error)

	// SetupGame wipes the store and creates a waiting game from a roster
	SetupGame(ctx context.Context, input *SetupGameInput) (*SetupGameOutput, error)

	// StartGame moves a waiting game to ongoing
	StartGame(ctx context.Context) (*models.GameState, error)

	// ResetGame clears all progress but keeps the roster
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// SetPortalLevel forces the portal to a level in [0,20]
	SetPortalLevel(ctx context.Context, input *SetPortalLevelInput) (*models.GameState, error)

	// CreatePlayer registers one player
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*models.Player, error)

	// DeletePlayer removes one player
	DeletePlayer(ctx context.Context, input *DeletePlayerInput) error
}
