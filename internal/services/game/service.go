package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/common/identity"
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	missionRepo "github.com/KirkDiggler/portal/internal/repositories/mission"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/endgame"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/suspicion"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
)

type service struct {
	playerRepo    playerRepo.Repository
	missionRepo   missionRepo.Repository
	gameStateRepo gameStateRepo.Repository
	votingRepo    votingRepo.Repository
	events        events.Service
	missions      mission.Service
	traps         trap.Service
	voting        voting.Service
	suspicion     suspicion.Service
	endGame       endgame.Service
	clock         clock.Clock

	initialPortalLevel int
	meetingThresholds  []int
	trapUses           int
	sweepInterval      time.Duration

	commands chan command

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New creates a new game engine. Call Start before sending it commands.
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
	case cfg.VotingRepo == nil:
		return nil, ErrNilVotingRepo
	case cfg.Events == nil:
		return nil, ErrNilEvents
	case cfg.Missions == nil:
		return nil, ErrNilMissions
	case cfg.Traps == nil:
		return nil, ErrNilTraps
	case cfg.Voting == nil:
		return nil, ErrNilVoting
	case cfg.Suspicion == nil:
		return nil, ErrNilSuspicion
	case cfg.EndGame == nil:
		return nil, ErrNilEndGame
	case cfg.Clock == nil:
		return nil, ErrNilClock
	}

	level := cfg.InitialPortalLevel
	if level == 0 {
		level = models.DefaultPortalLevel
	}
	trapUses := cfg.TrapUses
	if trapUses <= 0 {
		trapUses = models.DefaultTrapUses
	}
	sweep := cfg.SweepInterval
	if sweep == 0 {
		sweep = DefaultSweepInterval
	}

	stopped := make(chan struct{})
	close(stopped)

	return &service{
		playerRepo:         cfg.PlayerRepo,
		missionRepo:        cfg.MissionRepo,
		gameStateRepo:      cfg.GameStateRepo,
		votingRepo:         cfg.VotingRepo,
		events:             cfg.Events,
		missions:           cfg.Missions,
		traps:              cfg.Traps,
		voting:             cfg.Voting,
		suspicion:          cfg.Suspicion,
		endGame:            cfg.EndGame,
		clock:              cfg.Clock,
		initialPortalLevel: models.ClampPortal(level),
		meetingThresholds:  cfg.MeetingThresholds,
		trapUses:           trapUses,
		sweepInterval:      sweep,
		commands:           make(chan command),
		stopped:            stopped,
	}, nil
}

// Login resolves a badge code to a player. A URL printed on the badge is
// reduced to its last path segment first.
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil {
		return nil, ErrEmptyIdentifier
	}
	id := identity.Normalize(input.Code)
	if id == "" {
		return nil, ErrEmptyIdentifier
	}

	p, err := s.lookupPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Welcome, %s!", p.Name)
	if p.IsEliminated {
		msg = fmt.Sprintf("Welcome back, %s. You have been eliminated, but you can still follow the game.", p.Name)
	}
	return &LoginOutput{Player: p, Message: msg}, nil
}

func (s *service) lookupPlayer(ctx context.Context, id string) (*models.Player, error) {
	p, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: id})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (s *service) ValidateScan(ctx context.Context, input *mission.ValidateMissionInput) (*mission.ValidateMissionOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*mission.ValidateMissionOutput, error) {
		return s.missions.ValidateMission(ctx, input)
	})
}

func (s *service) CreateMission(ctx context.Context, input *mission.CreateMissionInput) (*mission.CreateMissionOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*mission.CreateMissionOutput, error) {
		return s.missions.CreateMission(ctx, input)
	})
}

func (s *service) CreateMissionQueue(ctx context.Context, input *mission.CreateMissionQueueInput) (*mission.CreateMissionQueueOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*mission.CreateMissionQueueOutput, error) {
		return s.missions.CreateMissionQueue(ctx, input)
	})
}

func (s *service) ActivateInverseTrap(ctx context.Context, input *trap.ActivateInverseTrapInput) (*trap.ActivateInverseTrapOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*trap.ActivateInverseTrapOutput, error) {
		return s.traps.ActivateInverseTrap(ctx, input)
	})
}

func (s *service) AttemptMissionTheft(ctx context.Context, input *trap.AttemptMissionTheftInput) (*trap.AttemptMissionTheftOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*trap.AttemptMissionTheftOutput, error) {
		return s.traps.AttemptMissionTheft(ctx, input)
	})
}

func (s *service) CancelTrap(ctx context.Context, input *trap.CancelTrapInput) (*trap.CancelTrapOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*trap.CancelTrapOutput, error) {
		return s.traps.CancelTrap(ctx, input)
	})
}

func (s *service) StartVoting(ctx context.Context, input *voting.StartVotingSessionInput) (*voting.StartVotingSessionOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*voting.StartVotingSessionOutput, error) {
		return s.voting.StartVotingSession(ctx, input)
	})
}

func (s *service) CastVote(ctx context.Context, input *voting.CastVoteInput) (*voting.CastVoteOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*voting.CastVoteOutput, error) {
		return s.voting.CastVote(ctx, input)
	})
}

func (s *service) FinalizeVoting(ctx context.Context, input *voting.FinalizeVotingSessionInput) (*voting.FinalizeVotingSessionOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*voting.FinalizeVotingSessionOutput, error) {
		return s.voting.FinalizeVotingSession(ctx, input)
	})
}

func (s *service) CancelVoting(ctx context.Context, input *voting.CancelVotingSessionInput) (*models.VotingSession, error) {
	return execute(ctx, s, func(ctx context.Context) (*models.VotingSession, error) {
		return s.voting.CancelVotingSession(ctx, input)
	})
}

func (s *service) CloseExpiredVotes(ctx context.Context) (*voting.CloseExpiredSessionsOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*voting.CloseExpiredSessionsOutput, error) {
		return s.voting.CloseExpiredSessions(ctx)
	})
}

func (s *service) AddSuspect(ctx context.Context, input *suspicion.SuspectInput) (*suspicion.SuspectOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*suspicion.SuspectOutput, error) {
		return s.suspicion.AddSuspect(ctx, input)
	})
}

func (s *service) RemoveSuspect(ctx context.Context, input *suspicion.SuspectInput) (*suspicion.SuspectOutput, error) {
	return execute(ctx, s, func(ctx context.Context) (*suspicion.SuspectOutput, error) {
		return s.suspicion.RemoveSuspect(ctx, input)
	})
}

func (s *service) ListSuspects(ctx context.Context, input *suspicion.ListSuspectsInput) (*suspicion.ListSuspectsOutput, error) {
	return s.suspicion.ListSuspects(ctx, input)
}

func (s *service) GetGameState(ctx context.Context) (*models.GameState, error) {
	state, err := s.gameStateRepo.GetGameState(ctx)
	if err != nil {
		if errors.Is(err, gameStateRepo.ErrGameStateNotFound) {
			return nil, ErrGameNotConfigured
		}
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return state, nil
}

func (s *service) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil {
		return nil, ErrEmptyIdentifier
	}
	id := identity.Normalize(input.PlayerID)
	if id == "" {
		return nil, ErrEmptyIdentifier
	}
	return s.lookupPlayer(ctx, id)
}

func (s *service) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	activeOnly := input != nil && input.ActiveOnly
	out, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return &ListPlayersOutput{Players: out.Players}, nil
}

func (s *service) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	in := &events.ListRecentInput{}
	if input != nil {
		in.Limit = input.Limit
		in.IncludePrivate = input.IncludePrivate
	}
	out, err := s.events.ListRecent(ctx, in)
	if err != nil {
		return nil, err
	}
	return &ListEventsOutput{Events: out.Events}, nil
}

func (s *service) GetEndGameStats(ctx context.Context) (*models.EndGameStats, error) {
	return s.endGame.GetEndGameStats(ctx)
}

func (s *service) GetActiveVotingSession(ctx context.Context) (*models.VotingSession, error) {
	return s.voting.GetActiveVotingSession(ctx)
}

// WatchGameState delivers the current game state and every later change.
// Deletions and undecodable changes are skipped.
func (s *service) WatchGameState(ctx context.Context, handler func(*models.GameState)) (*document.Subscription, error) {
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}
	return s.gameStateRepo.WatchGameState(ctx, &gameStateRepo.WatchGameStateInput{
		Handler: func(change *document.Change) {
			if change.Deleted {
				return
			}
			var state models.GameState
			if err := change.Decode(&state); err != nil {
				return
			}
			handler(&state)
		},
	})
}

func (s *service) WatchEvents(ctx context.Context, input *WatchEventsInput) (*document.Subscription, error) {
	if input == nil || input.Handler == nil {
		return nil, errors.New("input and handler cannot be nil")
	}
	return s.events.Watch(ctx, &events.WatchInput{
		IncludePrivate: input.IncludePrivate,
		Handler:        input.Handler,
	})
}
