package game

import (
	"time"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/models"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	missionRepo "github.com/KirkDiggler/portal/internal/repositories/mission"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/endgame"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/suspicion"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
)

// DefaultSweepInterval is how often expired votes are closed
const DefaultSweepInterval = 15 * time.Second

// Config holds configuration for the game engine
type Config struct {
	PlayerRepo    playerRepo.Repository
	MissionRepo   missionRepo.Repository
	GameStateRepo gameStateRepo.Repository
	VotingRepo    votingRepo.Repository

	Events    events.Service
	Missions  mission.Service
	Traps     trap.Service
	Voting    voting.Service
	Suspicion suspicion.Service
	EndGame   endgame.Service
	Clock     clock.Clock

	// InitialPortalLevel is used by setup and reset; zero means the default
	InitialPortalLevel int

	// MeetingThresholds are the mission counts that call a meeting
	MeetingThresholds []int

	// TrapUses is the lifetime trap budget of each altered player
	TrapUses int

	// SweepInterval is how often expired votes are closed; negative disables it
	SweepInterval time.Duration
}

// LoginInput contains the raw code read from a badge or typed by hand
type LoginInput struct {
	Code string
}

// LoginOutput contains the logged in player
type LoginOutput struct {
	Player  *models.Player
	Message string
}

// GetPlayerInput contains parameters for fetching a player
type GetPlayerInput struct {
	PlayerID string
}

// ListPlayersInput contains parameters for listing players
type ListPlayersInput struct {
	ActiveOnly bool
}

// ListPlayersOutput contains the players
type ListPlayersOutput struct {
	Players []*models.Player
}

// ListEventsInput contains parameters for reading the feed
type ListEventsInput struct {
	Limit          int
	IncludePrivate bool
}

// ListEventsOutput contains the events, newest first
type ListEventsOutput struct {
	Events []*models.GameEvent
}

// WatchEventsInput contains parameters for streaming the feed
type WatchEventsInput struct {
	IncludePrivate bool
	Handler        func(*models.GameEvent)
}

// PlayerSpec describes one roster entry
type PlayerSpec struct {
	ID   string
	Name string
	Role models.PlayerRole
}

// SetupGameInput contains the roster of a new game
type SetupGameInput struct {
	Players []PlayerSpec

	// AssignMissions gives every player a mission queue right away
	AssignMissions bool
}

// SetupGameOutput contains the created game
type SetupGameOutput struct {
	GameState *models.GameState
	Players   []*models.Player

	// MissionsAssigned counts missions handed out when AssignMissions is set
	MissionsAssigned int
}

// ResetGameInput contains parameters for a reset
type ResetGameInput struct {
	// Reassign hands out fresh mission queues after the reset
	Reassign bool
}

// ResetGameOutput reports what the reset touched
type ResetGameOutput struct {
	PlayersReset     int
	MissionsAssigned int
	Message          string
}

// SetPortalLevelInput contains the level to force
type SetPortalLevelInput struct {
	Level int
}

// CreatePlayerInput contains parameters for registering a player
type CreatePlayerInput struct {
	ID   string
	Name string
	Role models.PlayerRole
}

// DeletePlayerInput contains parameters for removing a player
type DeletePlayerInput struct {
	PlayerID string
}
