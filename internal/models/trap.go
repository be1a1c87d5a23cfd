package models

import (
	"time"
)

// TrapType identifies the kind of sabotage
type TrapType string

const (
	// TrapTypeInverse baits a human into scanning the altered player
	TrapTypeInverse TrapType = "inverse_trap"

	// TrapTypeMissionTheft invalidates a human's mission by guessing its target
	TrapTypeMissionTheft TrapType = "mission_theft"
)

// Trap is a sabotage set by an altered player
type Trap struct {
	ID         string     `json:"id"`
	Type       TrapType   `json:"type"`
	OwnerID    string     `json:"ownerId"`
	TargetID   string     `json:"targetId"`
	TargetName string     `json:"targetName"`
	Hint       string     `json:"hint"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}
