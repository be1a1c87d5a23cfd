package endgame

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/models"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/events"
)

// Config holds the dependencies for the end-game manager
type Config struct {
	PlayerRepo    playerRepo.Repository
	GameStateRepo gameStateRepo.Repository
	VotingRepo    votingRepo.Repository
	Events        events.Service
	Clock         clock.Clock
}

type service struct {
	playerRepo    playerRepo.Repository
	gameStateRepo gameStateRepo.Repository
	votingRepo    votingRepo.Repository
	events        events.Service
	clock         clock.Clock
}

// New creates a new end-game manager
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.GameStateRepo == nil {
		return nil, ErrNilGameStateRepo
	}
	if cfg.VotingRepo == nil {
		return nil, ErrNilVotingRepo
	}
	if cfg.Events == nil {
		return nil, ErrNilEvents
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		playerRepo:    cfg.PlayerRepo,
		gameStateRepo: cfg.GameStateRepo,
		votingRepo:    cfg.VotingRepo,
		events:        cfg.Events,
		clock:         cfg.Clock,
	}, nil
}

// CheckGameEnd evaluates, in order: portal closed, portal opened, every
// altered player eliminated, every human eliminated. The portal conditions
// win regardless of who is still alive.
func (s *service) CheckGameEnd(ctx context.Context) (*CheckGameEndOutput, error) {
	state, err := s.gameStateRepo.GetGameState(ctx)
	if err != nil {
		return nil, err
	}

	if state.Status == models.GameStatusEnded {
		return ended(state.Winner, state.EndReason), nil
	}

	if state.PortalLevel <= models.PortalMin {
		return ended(models.TeamHumans, models.EndReasonPortalClosed), nil
	}
	if state.PortalLevel >= models.PortalMax {
		return ended(models.TeamAltered, models.EndReasonPortalOpened), nil
	}

	players, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{})
	if err != nil {
		return nil, err
	}

	var humans, altered, aliveHumans, aliveAltered int
	for _, p := range players.Players {
		switch p.Role {
		case models.RoleHuman:
			humans++
			if !p.IsEliminated {
				aliveHumans++
			}
		case models.RoleAltered:
			altered++
			if !p.IsEliminated {
				aliveAltered++
			}
		}
	}

	// A side that never had players cannot be wiped out
	if altered > 0 && aliveAltered == 0 && aliveHumans > 0 {
		return ended(models.TeamHumans, models.EndReasonAllAlteredEliminated), nil
	}
	if humans > 0 && aliveHumans == 0 && aliveAltered > 0 {
		return ended(models.TeamAltered, models.EndReasonAllHumansEliminated), nil
	}

	return &CheckGameEndOutput{Ended: false}, nil
}

func ended(winner models.Team, reason models.EndReason) *CheckGameEndOutput {
	return &CheckGameEndOutput{
		Ended:      true,
		Winner:     winner,
		Reason:     reason,
		ReasonText: reason.Description(),
	}
}

// TriggerGameEnd ends the game and persists the statistics snapshot
func (s *service) TriggerGameEnd(ctx context.Context, input *TriggerGameEndInput) (*TriggerGameEndOutput, error) {
	if input == nil || (input.Winner != models.TeamHumans && input.Winner != models.TeamAltered) {
		return nil, ErrInvalidWinner
	}

	players, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{})
	if err != nil {
		return nil, err
	}

	sessions, err := s.votingRepo.ListSessions(ctx, &votingRepo.ListSessionsInput{})
	if err != nil {
		return nil, err
	}
	votesReceived := make(map[string]int)
	for _, session := range sessions.Sessions {
		for _, target := range session.Votes {
			votesReceived[target]++
		}
	}

	now := s.clock.Now()
	alreadyEnded := false
	state, err := s.gameStateRepo.MutateGameState(ctx, &gameStateRepo.MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			if g.Status == models.GameStatusEnded {
				alreadyEnded = true
				return nil
			}
			alreadyEnded = false
			g.Status = models.GameStatusEnded
			g.Winner = input.Winner
			g.EndReason = input.Reason
			g.EndedAt = &now
			g.ActiveVotingSessionID = ""
			g.EndGameStats = buildStats(g, players.Players, votesReceived, now)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if !alreadyEnded {
		s.emitVictory(ctx, input.Winner, input.Reason)
	}

	return &TriggerGameEndOutput{
		AlreadyEnded: alreadyEnded,
		Stats:        state.EndGameStats,
	}, nil
}

func (s *service) emitVictory(ctx context.Context, winner models.Team, reason models.EndReason) {
	eventType := models.EventHumanVictory
	message := fmt.Sprintf("The humans have won: %s!", reason.Description())
	if winner == models.TeamAltered {
		eventType = models.EventAlteredVictory
		message = fmt.Sprintf("The altered have won: %s!", reason.Description())
	}

	_, err := s.events.Emit(ctx, &events.EmitInput{
		Type:    eventType,
		Message: message,
		Data:    map[string]string{"reason": string(reason)},
	})
	if err != nil {
		log.Printf("Failed to emit victory event: %v", err)
	}
}

// EndIfWon ends the game when a win condition holds
func (s *service) EndIfWon(ctx context.Context) (*EndIfWonOutput, error) {
	check, err := s.CheckGameEnd(ctx)
	if err != nil {
		return nil, err
	}
	if !check.Ended {
		return &EndIfWonOutput{Ended: false}, nil
	}

	out, err := s.TriggerGameEnd(ctx, &TriggerGameEndInput{
		Winner: check.Winner,
		Reason: check.Reason,
	})
	if err != nil {
		return nil, err
	}

	return &EndIfWonOutput{
		Ended:  true,
		Winner: check.Winner,
		Reason: check.Reason,
		Stats:  out.Stats,
	}, nil
}

// GetEndGameStats returns the snapshot of an ended game
func (s *service) GetEndGameStats(ctx context.Context) (*models.EndGameStats, error) {
	state, err := s.gameStateRepo.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Status != models.GameStatusEnded || state.EndGameStats == nil {
		return nil, ErrGameNotEnded
	}
	return state.EndGameStats, nil
}
