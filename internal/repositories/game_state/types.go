package game_state

import (
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Counter names a numeric field of the game state
type Counter string

const (
	CounterHumanFragments         Counter = "humanFragments"
	CounterAlteredSuccesses       Counter = "alteredSuccesses"
	CounterTotalMissionsCompleted Counter = "totalMissionsCompleted"
	CounterMeetingsHeld           Counter = "meetingsHeld"
)

type SaveGameStateInput struct {
	GameState *models.GameState
}

type MutateGameStateInput struct {
	Mutate func(g *models.GameState) error
}

type AdjustPortalInput struct {
	Delta int

	// Role selects the success counter to credit; empty credits none
	Role models.PlayerRole

	// CountMission also bumps TotalMissionsCompleted
	CountMission bool
}

type AdjustPortalOutput struct {
	Previous  int
	Current   int
	GameState *models.GameState
}

type IncrementCounterInput struct {
	Counter Counter
	By      int
}

type WatchGameStateInput struct {
	Handler func(*document.Change)
}
