package models

import (
	"time"
)

// GameStatus represents the current phase of the game
type GameStatus string

const (
	// GameStatusWaiting indicates players are being set up
	GameStatusWaiting GameStatus = "waiting"

	// GameStatusOngoing indicates the game is in progress
	GameStatusOngoing GameStatus = "ongoing"

	// GameStatusEnded indicates a side has won
	GameStatusEnded GameStatus = "ended"
)

// Team names the winning side of a game
type Team string

const (
	TeamHumans  Team = "humans"
	TeamAltered Team = "altered"
)

// Role returns the player role that belongs to the team
func (t Team) Role() PlayerRole {
	if t == TeamAltered {
		return RoleAltered
	}
	return RoleHuman
}

// EndReason is the machine-readable cause of a game ending
type EndReason string

const (
	EndReasonPortalClosed         EndReason = "portal_closed"
	EndReasonPortalOpened         EndReason = "portal_opened"
	EndReasonAllAlteredEliminated EndReason = "all_altered_eliminated"
	EndReasonAllHumansEliminated  EndReason = "all_humans_eliminated"
)

// Description returns the canned human-readable reason
func (r EndReason) Description() string {
	switch r {
	case EndReasonPortalClosed:
		return "portal closed"
	case EndReasonPortalOpened:
		return "portal opened"
	case EndReasonAllAlteredEliminated:
		return "all altered eliminated"
	case EndReasonAllHumansEliminated:
		return "all humans eliminated"
	default:
		return string(r)
	}
}

// Portal bounds
const (
	PortalMin          = 0
	PortalMax          = 20
	DefaultPortalLevel = 10
)

// ClampPortal forces a portal level into [PortalMin, PortalMax]
func ClampPortal(level int) int {
	if level < PortalMin {
		return PortalMin
	}
	if level > PortalMax {
		return PortalMax
	}
	return level
}

// GameStateID is the document ID of the singleton game state
const GameStateID = "current"

// DefaultMeetingThresholds are the completed-mission counts that call a meeting
var DefaultMeetingThresholds = []int{7, 14, 20}

// GameState is the single shared game document
type GameState struct {
	// Status is the current phase of the game
	Status GameStatus `json:"status"`

	// PortalLevel is always within [PortalMin, PortalMax]
	PortalLevel int `json:"portalLevel"`

	// HumanFragments counts successful human missions
	HumanFragments int `json:"humanFragments"`

	// AlteredSuccesses counts successful altered missions and sabotage
	AlteredSuccesses int `json:"alteredSuccesses"`

	// TotalMissionsCompleted counts every successful validation
	TotalMissionsCompleted int `json:"totalMissionsCompleted"`

	Winner    Team      `json:"winner,omitempty"`
	EndReason EndReason `json:"endReason,omitempty"`

	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`

	// MeetingsHeld counts threshold-triggered votes that have closed
	MeetingsHeld int `json:"meetingsHeld"`

	// MeetingThresholds are compared against TotalMissionsCompleted
	MeetingThresholds []int `json:"meetingThresholds"`

	// ActiveVotingSessionID points at the single active voting session
	ActiveVotingSessionID string `json:"activeVotingSessionId,omitempty"`

	// EndGameStats is filled once the game ends
	EndGameStats *EndGameStats `json:"endGameStats,omitempty"`
}

// NewGameState returns a waiting game at the given portal level
func NewGameState(portalLevel int, thresholds []int) *GameState {
	if len(thresholds) == 0 {
		thresholds = DefaultMeetingThresholds
	}
	t := make([]int, len(thresholds))
	copy(t, thresholds)
	return &GameState{
		Status:            GameStatusWaiting,
		PortalLevel:       ClampPortal(portalLevel),
		MeetingThresholds: t,
	}
}

// NextMeetingThreshold returns the next threshold to reach, if any
func (g *GameState) NextMeetingThreshold() (int, bool) {
	if g.MeetingsHeld >= len(g.MeetingThresholds) {
		return 0, false
	}
	return g.MeetingThresholds[g.MeetingsHeld], true
}
