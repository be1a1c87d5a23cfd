package models

import (
	"time"
)

// PlayerRole is the hidden side a player plays for
type PlayerRole string

const (
	// RoleHuman players try to close the portal
	RoleHuman PlayerRole = "human"

	// RoleAltered players try to open the portal and may set traps
	RoleAltered PlayerRole = "altered"
)

// Valid reports whether the role is one of the known roles
func (r PlayerRole) Valid() bool {
	return r == RoleHuman || r == RoleAltered
}

// DefaultTrapUses is the number of lifetime trap uses an altered player starts with
const DefaultTrapUses = 2

// Player represents a participant in the game
type Player struct {
	// ID is the normalized identifier printed on the player's badge
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Role is the hidden role of the player
	Role PlayerRole `json:"role"`

	// CurrentMission is the mission the player is working on
	CurrentMission *Mission `json:"currentMission,omitempty"`

	// MissionQueue holds the pending missions in tier order
	MissionQueue []*Mission `json:"missionQueue"`

	// MissionsCompleted holds the IDs of completed missions
	MissionsCompleted []string `json:"missionsCompleted"`

	// AllMissionsCompleted is set once the last queued mission is done
	AllMissionsCompleted bool `json:"allMissionsCompleted"`

	// IsEliminated is set when the player has been voted out
	IsEliminated bool `json:"isEliminated"`

	// EliminatedAt is when the player was voted out
	EliminatedAt *time.Time `json:"eliminatedAt,omitempty"`

	// Suspicions holds the IDs of players this player suspects
	Suspicions []string `json:"suspicions"`

	// Traps is only present for altered players
	Traps *TrapState `json:"traps,omitempty"`

	// LastScanAttemptAt is stamped on every counted scan attempt
	LastScanAttemptAt *time.Time `json:"lastScanAttemptAt,omitempty"`

	// LastValidationAt is stamped on every successful validation
	LastValidationAt *time.Time `json:"lastValidationAt,omitempty"`

	// ConsecutiveFailures counts mismatched scans since the last success
	ConsecutiveFailures int `json:"consecutiveFailures"`

	// CreatedAt is when the player was registered
	CreatedAt time.Time `json:"createdAt"`
}

// TrapState is the sabotage bookkeeping carried by altered players
type TrapState struct {
	// Remaining is the number of trap uses left
	Remaining int `json:"remaining"`

	// Active is the trap currently set, if any
	Active *Trap `json:"active,omitempty"`

	// Completed holds the IDs of traps that resolved in the altered player's favour
	Completed []string `json:"completed"`
}

// NewPlayer builds a fresh player record. Trap state is only attached to
// altered players.
func NewPlayer(id, name string, role PlayerRole, trapUses int, now time.Time) *Player {
	p := &Player{
		ID:                id,
		Name:              name,
		Role:              role,
		MissionQueue:      []*Mission{},
		MissionsCompleted: []string{},
		Suspicions:        []string{},
		CreatedAt:         now,
	}
	if role == RoleAltered {
		p.Traps = &TrapState{
			Remaining: trapUses,
			Completed: []string{},
		}
	}
	return p
}

// IsAltered reports whether the player is on the altered side
func (p *Player) IsAltered() bool {
	return p.Role == RoleAltered
}

// HasActiveMission reports whether the player currently holds a mission
func (p *Player) HasActiveMission() bool {
	return p.CurrentMission != nil
}

// HasPendingMissions reports whether the player holds a current or queued mission
func (p *Player) HasPendingMissions() bool {
	return p.CurrentMission != nil || len(p.MissionQueue) > 0
}

// Suspects reports whether id is in the player's suspicion set
func (p *Player) Suspects(id string) bool {
	for _, s := range p.Suspicions {
		if s == id {
			return true
		}
	}
	return false
}
