package mission

import (
	"time"

	"github.com/KirkDiggler/portal/internal/models"
)

// DefaultQueueSize is one mission per tier
const DefaultQueueSize = models.MaxMissionTier

// TargetRef names a preselected mission target
type TargetRef struct {
	ID   string
	Name string
}

type CreateMissionInput struct {
	PlayerID string
	Tier     int

	// Target skips the random pick when set
	Target *TargetRef
}

type CreateMissionOutput struct {
	Mission *models.Mission
}

type CreateMissionQueueInput struct {
	PlayerID string

	// Count is capped at one mission per tier; zero means DefaultQueueSize
	Count int
}

type CreateMissionQueueOutput struct {
	Missions []*models.Mission
	Message  string
}

type AssignInitialMissionsInput struct {
	Count int
}

type AssignInitialMissionsOutput struct {
	// Assigned maps player IDs to the number of missions they received
	Assigned map[string]int

	// Skipped lists players who could not get a mission
	Skipped []string
}

type ValidateMissionInput struct {
	// ScannedID is the raw text read from a badge
	ScannedID string
	PlayerID  string
}

type ValidateMissionOutput struct {
	// Success is true for every completed protocol step, including a mismatch
	Success         bool
	IsCorrectTarget bool

	// TrapTriggered means the scanned player was holding an inverse trap for the scanner
	TrapTriggered bool

	Message      string
	PortalLevel  int
	PortalChange int

	// NextWait is the cooldown owed after a mismatch
	NextWait time.Duration

	Mission              *models.Mission
	NextMission          *models.Mission
	AllMissionsCompleted bool

	GameEnded bool
	Winner    models.Team
	EndReason models.EndReason

	MeetingTriggered bool
	VotingSessionID  string
}
