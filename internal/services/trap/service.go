package trap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/common/identity"
	"github.com/KirkDiggler/portal/internal/common/uuid"
	"github.com/KirkDiggler/portal/internal/models"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	missionRepo "github.com/KirkDiggler/portal/internal/repositories/mission"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/messaging"
)

// Config holds the dependencies for the trap manager
type Config struct {
	PlayerRepo    playerRepo.Repository
	MissionRepo   missionRepo.Repository
	GameStateRepo gameStateRepo.Repository
	Events        events.Service
	Messaging     messaging.Service
	EndGame       EndChecker
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type service struct {
	playerRepo    playerRepo.Repository
	missionRepo   missionRepo.Repository
	gameStateRepo gameStateRepo.Repository
	events        events.Service
	messaging     messaging.Service
	endGame       EndChecker
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new trap manager
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	switch {
	case cfg.PlayerRepo == nil:
		return nil, ErrNilPlayerRepo
	case cfg.MissionRepo == nil:
		return nil, ErrNilMissionRepo
	case cfg.GameStateRepo == nil:
		return nil, ErrNilGameStateRepo
	case cfg.Events == nil:
		return nil, ErrNilEvents
	case cfg.Messaging == nil:
		return nil, ErrNilMessaging
	case cfg.EndGame == nil:
		return nil, ErrNilEndGame
	case cfg.Clock == nil:
		return nil, ErrNilClock
	case cfg.UUIDGenerator == nil:
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		playerRepo:    cfg.PlayerRepo,
		missionRepo:   cfg.MissionRepo,
		gameStateRepo: cfg.GameStateRepo,
		events:        cfg.Events,
		messaging:     cfg.Messaging,
		endGame:       cfg.EndGame,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

func (s *service) getPlayer(ctx context.Context, id string, notFound error) (*models.Player, error) {
	p, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: id})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return p, nil
}

// getSaboteur loads an altered player allowed to spend a trap use
func (s *service) getSaboteur(ctx context.Context, id string) (*models.Player, error) {
	p, err := s.getPlayer(ctx, identity.Normalize(id), ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	if !p.IsAltered() || p.Traps == nil {
		return nil, ErrNotAltered
	}
	if p.IsEliminated {
		return nil, ErrPlayerEliminated
	}
	return p, nil
}

// getHumanWithMission loads the human a trap is aimed at
func (s *service) getHumanWithMission(ctx context.Context, id string) (*models.Player, error) {
	p, err := s.getPlayer(ctx, identity.Normalize(id), ErrTargetNotFound)
	if err != nil {
		return nil, err
	}
	if p.Role != models.RoleHuman {
		return nil, ErrTargetNotHuman
	}
	if p.IsEliminated {
		return nil, ErrTargetEliminated
	}
	if p.CurrentMission == nil {
		return nil, ErrTargetNoMission
	}
	return p, nil
}

// ActivateInverseTrap arms an inverse trap against a human with an active mission
func (s *service) ActivateInverseTrap(ctx context.Context, input *ActivateInverseTrapInput) (*ActivateInverseTrapOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotFound
	}

	altered, err := s.getSaboteur(ctx, input.AlteredID)
	if err != nil {
		return nil, err
	}
	if altered.Traps.Active != nil {
		return nil, ErrTrapAlreadyActive
	}
	if altered.Traps.Remaining <= 0 {
		return nil, ErrNoTrapsRemaining
	}

	human, err := s.getHumanWithMission(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}

	hint, err := s.messaging.GetTrapHint(ctx, &messaging.GetTrapHintInput{
		TargetName: human.CurrentMission.TargetName,
	})
	if err != nil {
		return nil, err
	}

	trap := &models.Trap{
		ID:         uuid.Prefixed(s.uuidGenerator, "trap"),
		Type:       models.TrapTypeInverse,
		OwnerID:    altered.ID,
		TargetID:   human.ID,
		TargetName: human.Name,
		Hint:       hint.Hint,
		CreatedAt:  s.clock.Now(),
	}

	updated, err := s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: altered.ID,
		Mutate: func(p *models.Player) error {
			if p.Traps == nil {
				return ErrNotAltered
			}
			if p.Traps.Active != nil {
				return ErrTrapAlreadyActive
			}
			if p.Traps.Remaining <= 0 {
				return ErrNoTrapsRemaining
			}
			p.Traps.Active = trap
			p.Traps.Remaining--
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Inverse trap %s armed by %s against %s", trap.ID, altered.ID, human.ID)

	return &ActivateInverseTrapOutput{
		Trap:           trap,
		TrapsRemaining: updated.Traps.Remaining,
		Message: fmt.Sprintf("Trap armed against %s. Hint: %s. Get %s to scan your badge.",
			human.Name, hint.Hint, human.Name),
	}, nil
}

// ValidateInverseTrap fires the owner's trap when its target is the scanner.
// A trap that does not match is not an error; Resolved is false.
func (s *service) ValidateInverseTrap(ctx context.Context, input *ValidateInverseTrapInput) (*ValidateInverseTrapOutput, error) {
	if input == nil {
		return &ValidateInverseTrapOutput{}, nil
	}

	scannerID := identity.Normalize(input.ScannedByID)
	altered, err := s.getPlayer(ctx, identity.Normalize(input.AlteredID), ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	if !matchesInverseTrap(altered, scannerID) {
		return &ValidateInverseTrapOutput{Resolved: false}, nil
	}

	now := s.clock.Now()
	var sprung *models.Trap
	_, err = s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: altered.ID,
		Mutate: func(p *models.Player) error {
			sprung = nil
			if !matchesInverseTrap(p, scannerID) {
				return nil
			}
			t := *p.Traps.Active
			t.Completed = true
			t.ResolvedAt = &now
			sprung = &t
			p.Traps.Active = nil
			p.Traps.Completed = appendUnique(p.Traps.Completed, t.ID)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if sprung == nil {
		return &ValidateInverseTrapOutput{Resolved: false}, nil
	}

	// The baited human pays a failed attempt
	_, err = s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: scannerID,
		Mutate: func(p *models.Player) error {
			p.ConsecutiveFailures++
			p.LastScanAttemptAt = &now
			return nil
		},
	})
	if err != nil && !errors.Is(err, playerRepo.ErrPlayerNotFound) {
		return nil, err
	}

	portal, err := s.gameStateRepo.AdjustPortal(ctx, &gameStateRepo.AdjustPortalInput{
		Delta: InverseTrapPortalGain,
		Role:  models.RoleAltered,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, &events.EmitInput{
		Type:       models.EventTrapSprung,
		Message:    fmt.Sprintf("%s's inverse trap caught %s", altered.Name, sprung.TargetName),
		PlayerID:   altered.ID,
		PlayerName: altered.Name,
		Visibility: models.VisibilityPrivate,
		Data:       map[string]string{"trapId": sprung.ID, "targetId": sprung.TargetID},
	})
	s.emitPortalSurge(ctx, portal)

	out := &ValidateInverseTrapOutput{
		Resolved:    true,
		Trap:        sprung,
		PortalLevel: portal.Current,
		Message:     fmt.Sprintf("Trap sprung! %s scanned you. Portal +%d.", sprung.TargetName, InverseTrapPortalGain),
	}

	end, err := s.endGame.EndIfWon(ctx)
	if err != nil {
		return nil, err
	}
	if end.Ended {
		out.GameEnded = true
		out.Winner = end.Winner
		out.EndReason = end.Reason
	}

	return out, nil
}

func matchesInverseTrap(p *models.Player, scannerID string) bool {
	if p == nil || !p.IsAltered() || p.IsEliminated || p.Traps == nil || p.Traps.Active == nil {
		return false
	}
	return p.Traps.Active.Type == models.TrapTypeInverse && p.Traps.Active.TargetID == scannerID
}

// AttemptMissionTheft compares a guess against the human's mission target.
// Wrong guesses are free and change nothing.
func (s *service) AttemptMissionTheft(ctx context.Context, input *AttemptMissionTheftInput) (*AttemptMissionTheftOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotFound
	}
	guess := identity.Normalize(input.GuessedTargetID)
	if guess == "" {
		return nil, ErrEmptyGuess
	}

	altered, err := s.getSaboteur(ctx, input.AlteredID)
	if err != nil {
		return nil, err
	}
	if altered.Traps.Remaining <= 0 {
		return nil, ErrNoTrapsRemaining
	}

	human, err := s.getHumanWithMission(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}

	guessedName := guess
	if guessed, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: guess}); err == nil {
		guessedName = guessed.Name
	}

	if human.CurrentMission.TargetID != guess {
		return &AttemptMissionTheftOutput{
			Correct:        false,
			TrapsRemaining: altered.Traps.Remaining,
			Message:        fmt.Sprintf("Wrong guess: %s is not the target. The attempt did not cost a trap.", guessedName),
		}, nil
	}

	now := s.clock.Now()

	// Invalidate the mission first; the queue stays intact
	var stolen *models.Mission
	_, err = s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: human.ID,
		Mutate: func(p *models.Player) error {
			if p.CurrentMission == nil || p.CurrentMission.TargetID != guess {
				return ErrTargetNoMission
			}
			stolen = p.CurrentMission
			p.CurrentMission = nil
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	theftID := uuid.Prefixed(s.uuidGenerator, "trap_theft")
	updated, err := s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: altered.ID,
		Mutate: func(p *models.Player) error {
			if p.Traps == nil {
				return ErrNotAltered
			}
			if p.Traps.Remaining > 0 {
				p.Traps.Remaining--
			}
			p.Traps.Completed = appendUnique(p.Traps.Completed, theftID)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.missionRepo.ResolveMission(ctx, &missionRepo.ResolveMissionInput{
		MissionID:  stolen.ID,
		Result:     models.MissionResultStolen,
		ResolvedAt: now,
	}); err != nil {
		log.Printf("Failed to mark mission %s stolen: %v", stolen.ID, err)
	}

	portal, err := s.gameStateRepo.AdjustPortal(ctx, &gameStateRepo.AdjustPortalInput{
		Delta: TheftPortalGain,
		Role:  models.RoleAltered,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, &events.EmitInput{
		Type:       models.EventMissionStolen,
		Message:    fmt.Sprintf("%s stole %s's mission", altered.Name, human.Name),
		PlayerID:   altered.ID,
		PlayerName: altered.Name,
		Visibility: models.VisibilityPrivate,
		Data:       map[string]string{"missionId": stolen.ID, "humanId": human.ID},
	})
	s.emitPortalSurge(ctx, portal)

	out := &AttemptMissionTheftOutput{
		Correct:        true,
		TrapsRemaining: updated.Traps.Remaining,
		PortalLevel:    portal.Current,
		Message: fmt.Sprintf("Theft succeeded! %s was the target. Portal +%d and %s's mission is void.",
			guessedName, TheftPortalGain, human.Name),
	}

	end, err := s.endGame.EndIfWon(ctx)
	if err != nil {
		return nil, err
	}
	if end.Ended {
		out.GameEnded = true
		out.Winner = end.Winner
		out.EndReason = end.Reason
	}

	return out, nil
}

// CancelTrap disarms the active trap and refunds the use
func (s *service) CancelTrap(ctx context.Context, input *CancelTrapInput) (*CancelTrapOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotFound
	}

	updated, err := s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: identity.Normalize(input.AlteredID),
		Mutate: func(p *models.Player) error {
			if !p.IsAltered() || p.Traps == nil {
				return ErrNotAltered
			}
			if p.Traps.Active == nil {
				return ErrNoActiveTrap
			}
			p.Traps.Active = nil
			p.Traps.Remaining++
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &CancelTrapOutput{
		TrapsRemaining: updated.Traps.Remaining,
		Message:        "Trap cancelled and refunded.",
	}, nil
}

func (s *service) emitPortalSurge(ctx context.Context, portal *gameStateRepo.AdjustPortalOutput) {
	if portal.Current == portal.Previous {
		return
	}
	s.emit(ctx, &events.EmitInput{
		Type:    models.EventPortalIncreased,
		Message: fmt.Sprintf("The portal surges to %d", portal.Current),
		Data:    map[string]string{"portalLevel": fmt.Sprint(portal.Current)},
	})
}

func (s *service) emit(ctx context.Context, input *events.EmitInput) {
	if _, err := s.events.Emit(ctx, input); err != nil {
		log.Printf("Failed to emit %s event: %v", input.Type, err)
	}
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}
