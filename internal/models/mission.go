package models

import (
	"time"
)

// MissionResult records how a mission ended
type MissionResult string

const (
	// MissionResultPending is the result of a mission still in play
	MissionResultPending MissionResult = ""

	// MissionResultSuccess is set when the assignee scanned the right target
	MissionResultSuccess MissionResult = "success"

	// MissionResultStolen is set when an altered player invalidated the mission
	MissionResultStolen MissionResult = "stolen"
)

// Mission tiers
const (
	MinMissionTier = 1
	MaxMissionTier = 3
)

// Mission is a riddle pointing at another player the assignee must scan
type Mission struct {
	ID           string `json:"id"`
	AssigneeID   string `json:"assigneeId"`
	AssigneeName string `json:"assigneeName"`
	TargetID     string `json:"targetId"`
	TargetName   string `json:"targetName"`
	Tier         int    `json:"tier"`
	Riddle       string `json:"riddle"`
	Instruction  string `json:"instruction"`
	Completed    bool   `json:"completed"`

	// Silent missions belong to altered players and never produce public events
	Silent bool `json:"silent"`

	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Result      MissionResult `json:"result,omitempty"`
}
