package models

import (
	"time"
)

// VotingStatus is the lifecycle state of a voting session
type VotingStatus string

const (
	VotingStatusActive    VotingStatus = "active"
	VotingStatusCompleted VotingStatus = "completed"
	VotingStatusCancelled VotingStatus = "cancelled"
)

// VotingTrigger records what opened a voting session
type VotingTrigger string

const (
	// VotingTriggerManual sessions are called by a player
	VotingTriggerManual VotingTrigger = "manual"

	// VotingTriggerThreshold sessions are called by the mission counter
	VotingTriggerThreshold VotingTrigger = "mission_threshold"
)

// SystemInitiator is the initiator ID used for automatic meetings
const SystemInitiator = "system"

// VotingSession is a plurality vote to eliminate one player
type VotingSession struct {
	ID              string        `json:"id"`
	InitiatedBy     string        `json:"initiatedBy"`
	InitiatedByName string        `json:"initiatedByName"`
	Trigger         VotingTrigger `json:"trigger"`
	StartedAt       time.Time     `json:"startedAt"`
	EndsAt          time.Time     `json:"endsAt"`
	Status          VotingStatus  `json:"status"`

	// Votes maps voter ID to target ID; re-voting overwrites the entry
	Votes map[string]string `json:"votes"`

	// EligibleVoters is a snapshot of non-eliminated players at start
	EligibleVoters []string `json:"eligibleVoters"`

	Results *VotingResults `json:"results,omitempty"`
	EndedAt *time.Time     `json:"endedAt,omitempty"`
}

// VotingResults are recorded once a session is finalized
type VotingResults struct {
	Eliminated     string         `json:"eliminated,omitempty"`
	EliminatedName string         `json:"eliminatedName,omitempty"`
	VoteCount      map[string]int `json:"voteCount"`
	TotalVotes     int            `json:"totalVotes"`
	Tied           bool           `json:"tied"`
}

// IsEligible reports whether playerID may vote in the session
func (v *VotingSession) IsEligible(playerID string) bool {
	for _, id := range v.EligibleVoters {
		if id == playerID {
			return true
		}
	}
	return false
}

// AllVoted reports whether every eligible voter has a vote entry
func (v *VotingSession) AllVoted() bool {
	for _, id := range v.EligibleVoters {
		if _, ok := v.Votes[id]; !ok {
			return false
		}
	}
	return true
}

// Expired reports whether the session deadline has passed
func (v *VotingSession) Expired(now time.Time) bool {
	return !v.EndsAt.IsZero() && !now.Before(v.EndsAt)
}
