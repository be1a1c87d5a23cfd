package endgame

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
)

func buildStats(g *models.GameState, players []*models.Player, votesReceived map[string]int, now time.Time) *models.EndGameStats {
	stats := &models.EndGameStats{
		Winner:           g.Winner,
		EndReason:        g.EndReason,
		FinalPortalLevel: g.PortalLevel,
		PlayerStats:      make([]*models.PlayerStats, 0, len(players)),
		EndedAt:          now,
	}
	if g.StartedAt != nil {
		stats.Duration = now.Sub(*g.StartedAt)
	}

	for _, p := range players {
		stats.TotalMissionsCompleted += len(p.MissionsCompleted)
		stats.PlayerStats = append(stats.PlayerStats, &models.PlayerStats{
			PlayerID:          p.ID,
			Name:              p.Name,
			Role:              p.Role,
			MissionsCompleted: len(p.MissionsCompleted),
			IsEliminated:      p.IsEliminated,
			EliminatedAt:      p.EliminatedAt,
			Suspicions:        len(p.Suspicions),
			VotesReceived:     votesReceived[p.ID],
		})
	}

	stats.MVP = selectMVP(stats.PlayerStats, g.Winner.Role())
	return stats
}

// selectMVP prefers surviving winners and falls back to every winner when
// the whole side was eliminated. Ties go to the earliest player ID.
func selectMVP(players []*models.PlayerStats, role models.PlayerRole) *models.MVP {
	var survivors, side []*models.PlayerStats
	for _, p := range players {
		if p.Role != role {
			continue
		}
		side = append(side, p)
		if !p.IsEliminated {
			survivors = append(survivors, p)
		}
	}

	candidates := survivors
	reason := "Most missions completed on the winning side"
	if len(candidates) == 0 {
		candidates = side
		reason = "Most missions completed before being eliminated"
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, p := range candidates[1:] {
		if p.MissionsCompleted > best.MissionsCompleted ||
			(p.MissionsCompleted == best.MissionsCompleted && p.PlayerID < best.PlayerID) {
			best = p
		}
	}

	return &models.MVP{
		PlayerID:          best.PlayerID,
		PlayerName:        best.Name,
		MissionsCompleted: best.MissionsCompleted,
		Reason:            fmt.Sprintf("%s (%d)", reason, best.MissionsCompleted),
	}
}
