package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/KirkDiggler/portal/internal/common/identity"
	"github.com/KirkDiggler/portal/internal/models"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/mission"
)

// SetupGame replaces whatever is stored with a waiting game built from the roster
func (s *service) SetupGame(ctx context.Context, input *SetupGameInput) (*SetupGameOutput, error) {
	if input == nil || len(input.Players) == 0 {
		return nil, ErrEmptyRoster
	}
	roster, err := normalizeRoster(input.Players)
	if err != nil {
		return nil, err
	}

	return execute(ctx, s, func(ctx context.Context) (*SetupGameOutput, error) {
		if err := s.clearProgress(ctx); err != nil {
			return nil, err
		}
		if err := s.playerRepo.DeleteAllPlayers(ctx); err != nil {
			return nil, fmt.Errorf("failed to delete players: %w", err)
		}

		state := models.NewGameState(s.initialPortalLevel, s.meetingThresholds)
		if err := s.gameStateRepo.SaveGameState(ctx, &gameStateRepo.SaveGameStateInput{GameState: state}); err != nil {
			return nil, fmt.Errorf("failed to save game state: %w", err)
		}

		now := s.clock.Now()
		players := make([]*models.Player, 0, len(roster))
		for _, spec := range roster {
			p := models.NewPlayer(spec.ID, spec.Name, spec.Role, s.trapUses, now)
			if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: p}); err != nil {
				return nil, fmt.Errorf("failed to save player %s: %w", spec.ID, err)
			}
			players = append(players, p)
		}

		out := &SetupGameOutput{GameState: state, Players: players}
		if input.AssignMissions {
			out.MissionsAssigned, err = s.assignMissions(ctx)
			if err != nil {
				return nil, err
			}
			// Reload so the returned players carry their queues
			listed, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{})
			if err != nil {
				return nil, fmt.Errorf("failed to list players: %w", err)
			}
			out.Players = listed.Players
		}

		log.Printf("Game set up with %d players (%d missions assigned)", len(players), out.MissionsAssigned)
		return out, nil
	})
}

func normalizeRoster(specs []PlayerSpec) ([]PlayerSpec, error) {
	seen := make(map[string]bool, len(specs))
	roster := make([]PlayerSpec, 0, len(specs))
	for _, spec := range specs {
		p, err := normalizeSpec(spec.ID, spec.Name, spec.Role)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
		roster = append(roster, p)
	}
	return roster, nil
}

func normalizeSpec(rawID, rawName string, role models.PlayerRole) (PlayerSpec, error) {
	id := identity.Normalize(rawID)
	if id == "" {
		return PlayerSpec{}, ErrEmptyIdentifier
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		return PlayerSpec{}, fmt.Errorf("%w: %s", ErrInvalidName, id)
	}
	role = models.PlayerRole(strings.ToLower(strings.TrimSpace(string(role))))
	if !role.Valid() {
		return PlayerSpec{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return PlayerSpec{ID: id, Name: name, Role: role}, nil
}

// StartGame moves a waiting game to ongoing
func (s *service) StartGame(ctx context.Context) (*models.GameState, error) {
	return execute(ctx, s, func(ctx context.Context) (*models.GameState, error) {
		now := s.clock.Now()
		state, err := s.gameStateRepo.MutateGameState(ctx, &gameStateRepo.MutateGameStateInput{
			Mutate: func(g *models.GameState) error {
				if g.Status != models.GameStatusWaiting {
					return ErrInvalidGameState
				}
				g.Status = models.GameStatusOngoing
				g.StartedAt = &now
				return nil
			},
		})
		if err != nil {
			return nil, s.mapStateErr(err)
		}

		s.emit(ctx, &events.EmitInput{
			Type:    models.EventGameStarted,
			Message: fmt.Sprintf("The game has begun! The portal stands at %d.", state.PortalLevel),
			Data:    map[string]string{"portalLevel": strconv.Itoa(state.PortalLevel)},
		})
		return state, nil
	})
}

// ResetGame wipes progress and puts the game back in the waiting state. The
// roster, roles and names survive; trap budgets are restored.
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	reassign := input != nil && input.Reassign

	return execute(ctx, s, func(ctx context.Context) (*ResetGameOutput, error) {
		listed, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{})
		if err != nil {
			return nil, fmt.Errorf("failed to list players: %w", err)
		}

		if err := s.clearProgress(ctx); err != nil {
			return nil, err
		}

		for _, p := range listed.Players {
			fresh := models.NewPlayer(p.ID, p.Name, p.Role, s.trapUses, p.CreatedAt)
			if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: fresh}); err != nil {
				return nil, fmt.Errorf("failed to reset player %s: %w", p.ID, err)
			}
		}

		state := models.NewGameState(s.initialPortalLevel, s.meetingThresholds)
		if err := s.gameStateRepo.SaveGameState(ctx, &gameStateRepo.SaveGameStateInput{GameState: state}); err != nil {
			return nil, fmt.Errorf("failed to save game state: %w", err)
		}

		s.emit(ctx, &events.EmitInput{
			Type:    models.EventGameReset,
			Message: fmt.Sprintf("The game was reset. The portal is back at %d.", state.PortalLevel),
		})

		out := &ResetGameOutput{PlayersReset: len(listed.Players)}
		if reassign {
			out.MissionsAssigned, err = s.assignMissions(ctx)
			if err != nil {
				return nil, err
			}
		}
		out.Message = fmt.Sprintf("Game reset: %d players, %d missions assigned", out.PlayersReset, out.MissionsAssigned)
		log.Print(out.Message)
		return out, nil
	})
}

// clearProgress deletes missions, sessions and the event log
func (s *service) clearProgress(ctx context.Context) error {
	if err := s.missionRepo.DeleteAllMissions(ctx); err != nil {
		return fmt.Errorf("failed to delete missions: %w", err)
	}
	if err := s.votingRepo.DeleteAllSessions(ctx); err != nil {
		return fmt.Errorf("failed to delete voting sessions: %w", err)
	}
	if err := s.events.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	return nil
}

func (s *service) assignMissions(ctx context.Context) (int, error) {
	out, err := s.missions.AssignInitialMissions(ctx, &mission.AssignInitialMissionsInput{})
	if err != nil {
		return 0, fmt.Errorf("failed to assign missions: %w", err)
	}
	total := 0
	for _, n := range out.Assigned {
		total += n
	}
	if len(out.Skipped) > 0 {
		log.Printf("Players skipped during mission assignment: %s", strings.Join(out.Skipped, ", "))
	}
	return total, nil
}

// SetPortalLevel forces the portal to level. Win conditions are only
// evaluated while the game is ongoing.
func (s *service) SetPortalLevel(ctx context.Context, input *SetPortalLevelInput) (*models.GameState, error) {
	if input == nil || input.Level < models.PortalMin || input.Level > models.PortalMax {
		return nil, ErrInvalidLevel
	}

	return execute(ctx, s, func(ctx context.Context) (*models.GameState, error) {
		previous := 0
		state, err := s.gameStateRepo.MutateGameState(ctx, &gameStateRepo.MutateGameStateInput{
			Mutate: func(g *models.GameState) error {
				previous = g.PortalLevel
				g.PortalLevel = input.Level
				return nil
			},
		})
		if err != nil {
			return nil, s.mapStateErr(err)
		}

		if state.PortalLevel != previous {
			eventType := models.EventPortalIncreased
			if state.PortalLevel < previous {
				eventType = models.EventPortalDecreased
			}
			s.emit(ctx, &events.EmitInput{
				Type:    eventType,
				Message: fmt.Sprintf("The portal shifted from %d to %d.", previous, state.PortalLevel),
				Data: map[string]string{
					"previous": strconv.Itoa(previous),
					"current":  strconv.Itoa(state.PortalLevel),
				},
			})
		}

		if state.Status == models.GameStatusOngoing {
			ended, err := s.endGame.EndIfWon(ctx)
			if err != nil {
				return nil, err
			}
			if ended.Ended {
				return s.gameStateRepo.GetGameState(ctx)
			}
		}
		return state, nil
	})
}

// CreatePlayer registers a player in the current game
func (s *service) CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*models.Player, error) {
	if input == nil {
		return nil, ErrEmptyIdentifier
	}
	spec, err := normalizeSpec(input.ID, input.Name, input.Role)
	if err != nil {
		return nil, err
	}

	return execute(ctx, s, func(ctx context.Context) (*models.Player, error) {
		_, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: spec.ID})
		switch {
		case err == nil:
			return nil, ErrPlayerExists
		case !errors.Is(err, playerRepo.ErrPlayerNotFound):
			return nil, fmt.Errorf("failed to get player: %w", err)
		}

		p := models.NewPlayer(spec.ID, spec.Name, spec.Role, s.trapUses, s.clock.Now())
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: p}); err != nil {
			return nil, fmt.Errorf("failed to save player: %w", err)
		}
		log.Printf("Player %s (%s) created as %s", p.Name, p.ID, p.Role)
		return p, nil
	})
}

// DeletePlayer removes a player from the roster
func (s *service) DeletePlayer(ctx context.Context, input *DeletePlayerInput) error {
	if input == nil {
		return ErrEmptyIdentifier
	}
	id := identity.Normalize(input.PlayerID)
	if id == "" {
		return ErrEmptyIdentifier
	}

	_, err := execute(ctx, s, func(ctx context.Context) (struct{}, error) {
		if _, err := s.lookupPlayer(ctx, id); err != nil {
			return struct{}{}, err
		}
		if err := s.playerRepo.DeletePlayer(ctx, &playerRepo.DeletePlayerInput{PlayerID: id}); err != nil {
			return struct{}{}, fmt.Errorf("failed to delete player: %w", err)
		}
		log.Printf("Player %s deleted", id)
		return struct{}{}, nil
	})
	return err
}

func (s *service) mapStateErr(err error) error {
	if errors.Is(err, gameStateRepo.ErrGameStateNotFound) {
		return ErrGameNotConfigured
	}
	var gameErr GameError
	if errors.As(err, &gameErr) {
		return gameErr
	}
	return fmt.Errorf("failed to update game state: %w", err)
}

func (s *service) emit(ctx context.Context, input *events.EmitInput) {
	if _, err := s.events.Emit(ctx, input); err != nil {
		log.Printf("Failed to emit %s event: %v", input.Type, err)
	}
}
