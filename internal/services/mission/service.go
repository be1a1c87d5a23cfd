package mission

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/common/identity"
	"github.com/KirkDiggler/portal/internal/common/uuid"
	"github.com/KirkDiggler/portal/internal/dice"
	"github.com/KirkDiggler/portal/internal/models"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	missionRepo "github.com/KirkDiggler/portal/internal/repositories/mission"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/messaging"
	"github.com/KirkDiggler/portal/internal/services/trap"
)

// Config holds the dependencies for the mission service
type Config struct {
	PlayerRepo    playerRepo.Repository
	MissionRepo   missionRepo.Repository
	GameStateRepo gameStateRepo.Repository
	Events        events.Service
	Messaging     messaging.Service
	Traps         TrapValidator
	EndGame       EndChecker

	// Meetings is optional; without it no meeting is opened after a mission
	Meetings MeetingTrigger

	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type service struct {
	playerRepo    playerRepo.Repository
	missionRepo   missionRepo.Repository
	gameStateRepo gameStateRepo.Repository
	events        events.Service
	messaging     messaging.Service
	traps         TrapValidator
	endGame       EndChecker
	meetings      MeetingTrigger
	roller        dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new mission service
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
	case cfg.Traps == nil:
		return nil, ErrNilTraps
	case cfg.EndGame == nil:
		return nil, ErrNilEndGame
	case cfg.DiceRoller == nil:
		return nil, ErrNilDiceRoller
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
		traps:         cfg.Traps,
		endGame:       cfg.EndGame,
		meetings:      cfg.Meetings,
		roller:        cfg.DiceRoller,
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

// CreateMission builds a mission for the player and appends it to the mission log.
// The caller decides where the mission is attached.
func (s *service) CreateMission(ctx context.Context, input *CreateMissionInput) (*CreateMissionOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotFound
	}

	assignee, err := s.getPlayer(ctx, identity.Normalize(input.PlayerID), ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}

	target, err := s.resolveTarget(ctx, assignee, input.Target)
	if err != nil {
		return nil, err
	}

	tier := input.Tier
	if tier < models.MinMissionTier || tier > models.MaxMissionTier {
		tier = models.MinMissionTier
	}

	riddle, err := s.messaging.GetRiddle(ctx, &messaging.GetRiddleInput{Tier: tier})
	if err != nil {
		return nil, err
	}

	mission := &models.Mission{
		ID:           uuid.Prefixed(s.uuidGenerator, "mission"),
		AssigneeID:   assignee.ID,
		AssigneeName: assignee.Name,
		TargetID:     target.ID,
		TargetName:   target.Name,
		Tier:         tier,
		Riddle:       riddle.Riddle,
		Instruction:  riddle.Instruction,
		Silent:       assignee.IsAltered(),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.missionRepo.SaveMission(ctx, &missionRepo.SaveMissionInput{Mission: mission}); err != nil {
		return nil, err
	}

	log.Printf("Created tier %d mission %s for %s (silent=%t)", tier, mission.ID, assignee.ID, mission.Silent)

	return &CreateMissionOutput{Mission: mission}, nil
}

// resolveTarget uses the preselected target or picks one uniformly from the
// other players still in play. A preselected target must exist and still be
// in play; its stored name wins over the one passed in.
func (s *service) resolveTarget(ctx context.Context, assignee *models.Player, ref *TargetRef) (*TargetRef, error) {
	if ref != nil {
		id := identity.Normalize(ref.ID)
		if id == "" || id == assignee.ID {
			return nil, ErrInvalidTarget
		}
		p, err := s.getPlayer(ctx, id, ErrInvalidTarget)
		if err != nil {
			return nil, err
		}
		if p.IsEliminated {
			return nil, ErrInvalidTarget
		}
		name := p.Name
		if name == "" {
			name = ref.Name
		}
		return &TargetRef{ID: p.ID, Name: name}, nil
	}

	out, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	candidates := make([]*models.Player, 0, len(out.Players))
	for _, p := range out.Players {
		if p.ID != assignee.ID {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoEligibleTarget
	}

	picked := candidates[dice.Pick(s.roller, len(candidates))]
	return &TargetRef{ID: picked.ID, Name: picked.Name}, nil
}

// CreateMissionQueue assigns one mission per tier, starting at tier 1
func (s *service) CreateMissionQueue(ctx context.Context, input *CreateMissionQueueInput) (*CreateMissionQueueOutput, error) {
	if input == nil {
		return nil, ErrPlayerNotFound
	}

	player, err := s.getPlayer(ctx, identity.Normalize(input.PlayerID), ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	if player.HasPendingMissions() {
		return nil, ErrMissionsPending
	}

	count := input.Count
	if count <= 0 {
		count = DefaultQueueSize
	}
	if count > models.MaxMissionTier {
		count = models.MaxMissionTier
	}

	missions := make([]*models.Mission, 0, count)
	for tier := models.MinMissionTier; tier < models.MinMissionTier+count; tier++ {
		out, err := s.CreateMission(ctx, &CreateMissionInput{PlayerID: player.ID, Tier: tier})
		if err != nil {
			return nil, err
		}
		missions = append(missions, out.Mission)
	}

	_, err = s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: player.ID,
		Mutate: func(p *models.Player) error {
			if p.HasPendingMissions() {
				return ErrMissionsPending
			}
			p.CurrentMission = missions[0]
			p.MissionQueue = append([]*models.Mission{}, missions[1:]...)
			p.AllMissionsCompleted = false
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &CreateMissionQueueOutput{
		Missions: missions,
		Message:  fmt.Sprintf("%d missions created for %s", len(missions), player.Name),
	}, nil
}

// AssignInitialMissions queues missions for every player in play that has none
func (s *service) AssignInitialMissions(ctx context.Context, input *AssignInitialMissionsInput) (*AssignInitialMissionsOutput, error) {
	count := DefaultQueueSize
	if input != nil && input.Count > 0 {
		count = input.Count
	}

	out, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	result := &AssignInitialMissionsOutput{Assigned: map[string]int{}}
	for _, p := range out.Players {
		if p.HasPendingMissions() {
			continue
		}
		queued, err := s.CreateMissionQueue(ctx, &CreateMissionQueueInput{PlayerID: p.ID, Count: count})
		if err != nil {
			if errors.Is(err, ErrNoEligibleTarget) || errors.Is(err, ErrMissionsPending) {
				result.Skipped = append(result.Skipped, p.ID)
				continue
			}
			return nil, err
		}
		result.Assigned[p.ID] = len(queued.Missions)
	}

	return result, nil
}

// ValidateMission runs a badge scan through trap interception, the cooldown
// gates and the target comparison
func (s *service) ValidateMission(ctx context.Context, input *ValidateMissionInput) (*ValidateMissionOutput, error) {
	if input == nil {
		return nil, ErrEmptyScan
	}
	scannedID := identity.Normalize(input.ScannedID)
	if scannedID == "" {
		return nil, ErrEmptyScan
	}

	state, err := s.gameStateRepo.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	switch state.Status {
	case models.GameStatusOngoing:
	case models.GameStatusEnded:
		return nil, ErrGameEnded
	default:
		return nil, ErrGameNotStarted
	}

	scanner, err := s.getPlayer(ctx, identity.Normalize(input.PlayerID), ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	if scanner.IsEliminated {
		return nil, ErrPlayerEliminated
	}

	scanned, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: scannedID})
	if err != nil {
		if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, err
		}
		scanned = nil
	}

	if out, err := s.interceptTrap(ctx, scanner, scanned); err != nil || out != nil {
		return out, err
	}

	now := s.clock.Now()
	if cd := CooldownFor(scanner, now); cd.Active(now) {
		return nil, &CooldownError{Kind: cd.Kind, Remaining: cd.Remaining(now)}
	}

	if scanner.CurrentMission == nil {
		return nil, ErrNoActiveMission
	}
	if scanned == nil {
		return nil, ErrScannedPlayerNotFound
	}

	if scanner.CurrentMission.TargetID != scanned.ID {
		return s.recordMismatch(ctx, scanner, scanned)
	}

	return s.completeMission(ctx, scanner, scanned)
}

// interceptTrap fires the scanned player's inverse trap when it targets the
// scanner. A nil output means no trap fired.
func (s *service) interceptTrap(ctx context.Context, scanner, scanned *models.Player) (*ValidateMissionOutput, error) {
	if scanned == nil || !scanned.IsAltered() || scanned.Traps == nil || scanned.Traps.Active == nil {
		return nil, nil
	}
	if scanned.Traps.Active.Type != models.TrapTypeInverse || scanned.Traps.Active.TargetID != scanner.ID {
		return nil, nil
	}

	res, err := s.traps.ValidateInverseTrap(ctx, &trap.ValidateInverseTrapInput{
		AlteredID:   scanned.ID,
		ScannedByID: scanner.ID,
	})
	if err != nil {
		return nil, err
	}
	if !res.Resolved {
		return nil, nil
	}

	log.Printf("Scan by %s was intercepted by %s's inverse trap", scanner.ID, scanned.ID)

	return &ValidateMissionOutput{
		Success:         true,
		IsCorrectTarget: false,
		TrapTriggered:   true,
		Message:         fmt.Sprintf("Wrong target! You scanned %s.", scanned.Name),
		PortalLevel:     res.PortalLevel,
		NextWait:        FailureWait(scanner.ConsecutiveFailures + 1),
		Mission:         scanner.CurrentMission,
		GameEnded:       res.GameEnded,
		Winner:          res.Winner,
		EndReason:       res.EndReason,
	}, nil
}

func (s *service) recordMismatch(ctx context.Context, scanner, scanned *models.Player) (*ValidateMissionOutput, error) {
	now := s.clock.Now()
	updated, err := s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: scanner.ID,
		Mutate: func(p *models.Player) error {
			p.ConsecutiveFailures++
			p.LastScanAttemptAt = &now
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	wait := FailureWait(updated.ConsecutiveFailures)
	return &ValidateMissionOutput{
		Success:         true,
		IsCorrectTarget: false,
		Message:         fmt.Sprintf("Wrong target! You scanned %s. Next attempt in %s.", scanned.Name, formatWait(wait)),
		NextWait:        wait,
		Mission:         updated.CurrentMission,
	}, nil
}

func (s *service) completeMission(ctx context.Context, scanner, scanned *models.Player) (*ValidateMissionOutput, error) {
	now := s.clock.Now()
	missionID := scanner.CurrentMission.ID

	var completed *models.Mission
	updated, err := s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: scanner.ID,
		Mutate: func(p *models.Player) error {
			if p.CurrentMission == nil || p.CurrentMission.ID != missionID {
				return ErrNoActiveMission
			}
			m := *p.CurrentMission
			m.Completed = true
			m.CompletedAt = &now
			m.Result = models.MissionResultSuccess
			completed = &m

			p.ConsecutiveFailures = 0
			p.LastScanAttemptAt = &now
			p.LastValidationAt = &now

			if len(p.MissionQueue) > 0 {
				p.CurrentMission = p.MissionQueue[0]
				p.MissionQueue = p.MissionQueue[1:]
				p.AllMissionsCompleted = false
			} else {
				p.CurrentMission = nil
				p.AllMissionsCompleted = true
			}
			if !containsID(p.MissionsCompleted, m.ID) {
				p.MissionsCompleted = append(p.MissionsCompleted, m.ID)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	change := -1
	if scanner.IsAltered() {
		change = 1
	}

	portal, err := s.gameStateRepo.AdjustPortal(ctx, &gameStateRepo.AdjustPortalInput{
		Delta:        change,
		Role:         scanner.Role,
		CountMission: true,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.missionRepo.ResolveMission(ctx, &missionRepo.ResolveMissionInput{
		MissionID:  completed.ID,
		Result:     models.MissionResultSuccess,
		ResolvedAt: now,
	}); err != nil {
		log.Printf("Failed to resolve mission %s: %v", completed.ID, err)
	}

	s.announce(ctx, scanner, completed, portal.Current, change)

	out := &ValidateMissionOutput{
		Success:              true,
		IsCorrectTarget:      true,
		PortalLevel:          portal.Current,
		PortalChange:         change,
		Mission:              completed,
		NextMission:          updated.CurrentMission,
		AllMissionsCompleted: updated.AllMissionsCompleted,
	}
	if change < 0 {
		out.Message = fmt.Sprintf("Mission complete! You found %s. The portal recedes by %d.", scanned.Name, -change)
	} else {
		out.Message = fmt.Sprintf("Mission complete! You found %s. The portal grows by %d.", scanned.Name, change)
	}

	end, err := s.endGame.EndIfWon(ctx)
	if err != nil {
		return nil, err
	}
	if end.Ended {
		out.GameEnded = true
		out.Winner = end.Winner
		out.EndReason = end.Reason
		out.Message = fmt.Sprintf("Mission complete! The game is over: %s win (%s).", end.Winner, end.Reason.Description())
		return out, nil
	}

	if s.meetings != nil {
		meeting, err := s.meetings.CheckMeetingThreshold(ctx)
		if err != nil {
			log.Printf("Failed to check meeting threshold: %v", err)
		} else if meeting.Triggered {
			out.MeetingTriggered = true
			out.VotingSessionID = meeting.Session.ID
		}
	}

	return out, nil
}

// announce emits the completion and portal events; silent missions stay private
func (s *service) announce(ctx context.Context, scanner *models.Player, m *models.Mission, level, change int) {
	visibility := models.VisibilityPublic
	if m.Silent {
		visibility = models.VisibilityPrivate
	}

	msg, err := s.messaging.GetMissionCompletedMessage(ctx, &messaging.GetMissionCompletedMessageInput{
		PlayerName:  scanner.Name,
		PortalLevel: level,
	})
	text := fmt.Sprintf("%s completed a mission", scanner.Name)
	if err == nil {
		text = msg.Message
	}

	s.emit(ctx, &events.EmitInput{
		Type:       models.EventMissionCompleted,
		Message:    text,
		PlayerID:   scanner.ID,
		PlayerName: scanner.Name,
		Visibility: visibility,
		Data:       map[string]string{"missionId": m.ID, "tier": fmt.Sprint(m.Tier)},
	})

	portalEvent := &events.EmitInput{
		Type:       models.EventPortalDecreased,
		Message:    fmt.Sprintf("The portal weakens to %d", level),
		Visibility: visibility,
		Data:       map[string]string{"portalLevel": fmt.Sprint(level)},
	}
	if change > 0 {
		portalEvent.Type = models.EventPortalIncreased
		portalEvent.Message = fmt.Sprintf("The portal surges to %d", level)
	}
	s.emit(ctx, portalEvent)
}

func (s *service) emit(ctx context.Context, input *events.EmitInput) {
	if _, err := s.events.Emit(ctx, input); err != nil {
		log.Printf("Failed to emit %s event: %v", input.Type, err)
	}
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
