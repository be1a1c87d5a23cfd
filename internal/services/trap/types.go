package trap

import (
	"github.com/KirkDiggler/portal/internal/models"
)

// PortalGain per resolved sabotage
const (
	InverseTrapPortalGain = 1
	TheftPortalGain       = 2
)

type ActivateInverseTrapInput struct {
	AlteredID string
	TargetID  string
}

type ActivateInverseTrapOutput struct {
	Trap           *models.Trap
	TrapsRemaining int
	Message        string
}

type ValidateInverseTrapInput struct {
	AlteredID   string
	ScannedByID string
}

type ValidateInverseTrapOutput struct {
	// Resolved is false when there was no matching trap; nothing changed then
	Resolved    bool
	Trap        *models.Trap
	PortalLevel int
	Message     string
	GameEnded   bool
	Winner      models.Team
	EndReason   models.EndReason
}

type AttemptMissionTheftInput struct {
	AlteredID       string
	TargetID        string
	GuessedTargetID string
}

type AttemptMissionTheftOutput struct {
	// Correct is false for a wrong guess; wrong guesses cost nothing
	Correct        bool
	TrapsRemaining int
	PortalLevel    int
	Message        string
	GameEnded      bool
	Winner         models.Team
	EndReason      models.EndReason
}

type CancelTrapInput struct {
	AlteredID string
}

type CancelTrapOutput struct {
	TrapsRemaining int
	Message        string
}
