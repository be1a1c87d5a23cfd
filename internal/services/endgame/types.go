package endgame

import (
	"github.com/KirkDiggler/portal/internal/models"
)

type CheckGameEndOutput struct {
	Ended  bool
	Winner models.Team
	Reason models.EndReason

	// ReasonText is the canned human-readable reason
	ReasonText string
}

type TriggerGameEndInput struct {
	Winner models.Team
	Reason models.EndReason
}

type TriggerGameEndOutput struct {
	// AlreadyEnded is set when an earlier call ended the game
	AlreadyEnded bool
	Stats        *models.EndGameStats
}

type EndIfWonOutput struct {
	Ended  bool
	Winner models.Team
	Reason models.EndReason
	Stats  *models.EndGameStats
}
