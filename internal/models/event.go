package models

import (
	"time"
)

// EventType tags a game event
type EventType string

const (
	EventMissionCompleted EventType = "mission_completed"
	EventPortalIncreased  EventType = "portal_increased"
	EventPortalDecreased  EventType = "portal_decreased"
	EventPlayerEliminated EventType = "player_eliminated"
	EventMeetingTriggered EventType = "meeting_triggered"
	EventVotingStarted    EventType = "voting_started"
	EventVoteEnded        EventType = "vote_ended"
	EventSuspicionAdded   EventType = "suspicion_added"
	EventTrapSprung       EventType = "trap_sprung"
	EventMissionStolen    EventType = "mission_stolen"
	EventHumanVictory     EventType = "human_victory"
	EventAlteredVictory   EventType = "altered_victory"
	EventGameStarted      EventType = "game_started"
	EventGameReset        EventType = "game_reset"
)

// Visibility controls whether an event reaches the public feed
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// GameEvent is an immutable notification shown in the game feed
type GameEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	PlayerID   string            `json:"playerId,omitempty"`
	PlayerName string            `json:"playerName,omitempty"`
	Visibility Visibility        `json:"visibility"`
	Timestamp  time.Time         `json:"timestamp"`
	Data       map[string]string `json:"data,omitempty"`
}
