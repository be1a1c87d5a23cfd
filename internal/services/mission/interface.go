package mission

import (
	"context"

	"github.com/KirkDiggler/portal/internal/services/endgame"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
)

// Service generates missions and validates badge scans against them
type Service interface {
	// CreateMission builds and stores one mission for a player
	CreateMission(ctx context.Context, input *CreateMissionInput) (*CreateMissionOutput, error)

	// CreateMissionQueue assigns a player one mission per tier
	CreateMissionQueue(ctx context.Context, input *CreateMissionQueueInput) (*CreateMissionQueueOutput, error)

	// AssignInitialMissions gives every player in play without missions a queue
	AssignInitialMissions(ctx context.Context, input *AssignInitialMissionsInput) (*AssignInitialMissionsOutput, error)

	// ValidateMission checks a scanned badge against the scanner's mission
	ValidateMission(ctx context.Context, input *ValidateMissionInput) (*ValidateMissionOutput, error)
}

// TrapValidator resolves inverse traps held by the scanned player
type TrapValidator interface {
	ValidateInverseTrap(ctx context.Context, input *trap.ValidateInverseTrapInput) (*trap.ValidateInverseTrapOutput, error)
}

// EndChecker ends the game when a win condition holds
type EndChecker interface {
	EndIfWon(ctx context.Context) (*endgame.EndIfWonOutput, error)
}

// MeetingTrigger opens a meeting once enough missions are done
type MeetingTrigger interface {
	CheckMeetingThreshold(ctx context.Context) (*voting.CheckMeetingThresholdOutput, error)
}
