package models

import (
	"time"
)

// EndGameStats is the snapshot persisted when a game ends
type EndGameStats struct {
	Winner                 Team           `json:"winner"`
	EndReason              EndReason      `json:"endReason"`
	FinalPortalLevel       int            `json:"finalPortalLevel"`
	TotalMissionsCompleted int            `json:"totalMissionsCompleted"`
	PlayerStats            []*PlayerStats `json:"playerStats"`
	MVP                    *MVP           `json:"mvp,omitempty"`
	Duration               time.Duration  `json:"duration"`
	EndedAt                time.Time      `json:"endedAt"`
}

// PlayerStats summarizes one player's game
type PlayerStats struct {
	PlayerID          string     `json:"playerId"`
	Name              string     `json:"name"`
	Role              PlayerRole `json:"role"`
	MissionsCompleted int        `json:"missionsCompleted"`
	IsEliminated      bool       `json:"isEliminated"`
	EliminatedAt      *time.Time `json:"eliminatedAt,omitempty"`
	Suspicions        int        `json:"suspicions"`
	VotesReceived     int        `json:"votesReceived"`
}

// MVP is the standout player of the winning side
type MVP struct {
	PlayerID          string `json:"playerId"`
	PlayerName        string `json:"playerName"`
	MissionsCompleted int    `json:"missionsCompleted"`
	Reason            string `json:"reason"`
}
