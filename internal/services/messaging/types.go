package messaging

import (
	"github.com/KirkDiggler/portal/internal/dice"
)

// ServiceConfig holds the dependencies for the messaging service
type ServiceConfig struct {
	// DiceRoller picks among the template pools
	DiceRoller dice.Roller
}

// GetRiddleInput contains parameters for picking a riddle
type GetRiddleInput struct {
	// Tier outside 1..3 uses the tier 1 pool
	Tier int
}

// GetRiddleOutput contains the riddle text
type GetRiddleOutput struct {
	Riddle      string
	Instruction string
}

// GetTrapHintInput contains parameters for generating a hint
type GetTrapHintInput struct {
	// TargetName is the name of the human's own mission target
	TargetName string
}

// GetTrapHintOutput contains the hint text
type GetTrapHintOutput struct {
	Hint string
}

// GetMissionCompletedMessageInput contains parameters for the announcement
type GetMissionCompletedMessageInput struct {
	PlayerName  string
	PortalLevel int
}

// GetMissionCompletedMessageOutput contains the announcement text
type GetMissionCompletedMessageOutput struct {
	Message string
}
