package voting

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/common/identity"
	"github.com/KirkDiggler/portal/internal/common/uuid"
	"github.com/KirkDiggler/portal/internal/dice"
	"github.com/KirkDiggler/portal/internal/models"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/events"
)

// Config holds the dependencies for the voting service
type Config struct {
	PlayerRepo    playerRepo.Repository
	VotingRepo    votingRepo.Repository
	GameStateRepo gameStateRepo.Repository
	Events        events.Service
	EndGame       EndChecker
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// VotingDuration defaults to DefaultVotingDuration
	VotingDuration time.Duration
}

type service struct {
	playerRepo     playerRepo.Repository
	votingRepo     votingRepo.Repository
	gameStateRepo  gameStateRepo.Repository
	events         events.Service
	endGame        EndChecker
	roller         dice.Roller
	clock          clock.Clock
	uuidGenerator  uuid.UUID
	votingDuration time.Duration
}

// New creates a new voting service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	switch {
	case cfg.PlayerRepo == nil:
		return nil, ErrNilPlayerRepo
	case cfg.VotingRepo == nil:
		return nil, ErrNilVotingRepo
	case cfg.GameStateRepo == nil:
		return nil, ErrNilGameStateRepo
	case cfg.Events == nil:
		return nil, ErrNilEvents
	case cfg.EndGame == nil:
		return nil, ErrNilEndGame
	case cfg.DiceRoller == nil:
		return nil, ErrNilDiceRoller
	case cfg.Clock == nil:
		return nil, ErrNilClock
	case cfg.UUIDGenerator == nil:
		return nil, ErrNilUUIDGenerator
	}

	duration := cfg.VotingDuration
	if duration <= 0 {
		duration = DefaultVotingDuration
	}

	return &service{
		playerRepo:     cfg.PlayerRepo,
		votingRepo:     cfg.VotingRepo,
		gameStateRepo:  cfg.GameStateRepo,
		events:         cfg.Events,
		endGame:        cfg.EndGame,
		roller:         cfg.DiceRoller,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		votingDuration: duration,
	}, nil
}

// StartVotingSession opens a vote called by a player
func (s *service) StartVotingSession(ctx context.Context, input *StartVotingSessionInput) (*StartVotingSessionOutput, error) {
	if input == nil {
		return nil, ErrInitiatorNotFound
	}

	state, err := s.gameStateRepo.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Status == models.GameStatusEnded {
		return nil, ErrGameEnded
	}

	initiator, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: identity.Normalize(input.InitiatorID)})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrInitiatorNotFound
		}
		return nil, err
	}
	if initiator.IsEliminated {
		return nil, ErrNotEligibleVoter
	}

	session, err := s.open(ctx, models.VotingTriggerManual, initiator.ID, initiator.Name)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, &events.EmitInput{
		Type:       models.EventVotingStarted,
		Message:    fmt.Sprintf("%s called a vote", initiator.Name),
		PlayerID:   initiator.ID,
		PlayerName: initiator.Name,
		Data:       map[string]string{"sessionId": session.ID},
	})

	return &StartVotingSessionOutput{
		Session: session,
		Message: "Voting session started!",
	}, nil
}

// CheckMeetingThreshold opens a meeting once the completed mission count
// reaches the next threshold. A table too small to vote skips the meeting.
func (s *service) CheckMeetingThreshold(ctx context.Context) (*CheckMeetingThresholdOutput, error) {
	state, err := s.gameStateRepo.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Status == models.GameStatusEnded || state.ActiveVotingSessionID != "" {
		return &CheckMeetingThresholdOutput{}, nil
	}

	threshold, ok := state.NextMeetingThreshold()
	if !ok || state.TotalMissionsCompleted < threshold {
		return &CheckMeetingThresholdOutput{}, nil
	}

	session, err := s.open(ctx, models.VotingTriggerThreshold, models.SystemInitiator, "The portal")
	switch {
	case errors.Is(err, ErrSessionActive):
		return &CheckMeetingThresholdOutput{}, nil
	case errors.Is(err, ErrNotEnoughPlayers):
		log.Printf("Skipping meeting at %d missions: not enough players", threshold)
		if _, err := s.gameStateRepo.IncrementCounter(ctx, &gameStateRepo.IncrementCounterInput{
			Counter: gameStateRepo.CounterMeetingsHeld,
			By:      1,
		}); err != nil {
			return nil, err
		}
		return &CheckMeetingThresholdOutput{}, nil
	case err != nil:
		return nil, err
	}

	s.emit(ctx, &events.EmitInput{
		Type:    models.EventMeetingTriggered,
		Message: fmt.Sprintf("%d missions completed. Emergency meeting! Everyone must vote.", state.TotalMissionsCompleted),
		Data:    map[string]string{"sessionId": session.ID, "threshold": fmt.Sprint(threshold)},
	})

	return &CheckMeetingThresholdOutput{Triggered: true, Session: session}, nil
}

// open reserves the single active slot on the game state and stores the session
func (s *service) open(ctx context.Context, trigger models.VotingTrigger, initiatorID, initiatorName string) (*models.VotingSession, error) {
	players, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(players.Players) < MinVoters {
		return nil, ErrNotEnoughPlayers
	}

	voters := make([]string, 0, len(players.Players))
	for _, p := range players.Players {
		voters = append(voters, p.ID)
	}

	now := s.clock.Now()
	session := &models.VotingSession{
		ID:              uuid.Prefixed(s.uuidGenerator, "vote"),
		InitiatedBy:     initiatorID,
		InitiatedByName: initiatorName,
		Trigger:         trigger,
		StartedAt:       now,
		EndsAt:          now.Add(s.votingDuration),
		Status:          models.VotingStatusActive,
		Votes:           map[string]string{},
		EligibleVoters:  voters,
	}

	_, err = s.gameStateRepo.MutateGameState(ctx, &gameStateRepo.MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			if g.ActiveVotingSessionID != "" {
				return ErrSessionActive
			}
			g.ActiveVotingSessionID = session.ID
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.votingRepo.SaveSession(ctx, &votingRepo.SaveSessionInput{Session: session}); err != nil {
		s.release(ctx, session)
		return nil, err
	}

	log.Printf("Voting session %s opened (%s) with %d voters", session.ID, trigger, len(voters))
	return session, nil
}

// release frees the active slot held by session
func (s *service) release(ctx context.Context, session *models.VotingSession) {
	_, err := s.gameStateRepo.MutateGameState(ctx, &gameStateRepo.MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			if g.ActiveVotingSessionID == session.ID {
				g.ActiveVotingSessionID = ""
			}
			if session.Trigger == models.VotingTriggerThreshold && session.Status != models.VotingStatusActive {
				g.MeetingsHeld++
			}
			return nil
		},
	})
	if err != nil {
		log.Printf("Failed to release voting session %s: %v", session.ID, err)
	}
}

func (s *service) getSession(ctx context.Context, id string) (*models.VotingSession, error) {
	session, err := s.votingRepo.GetSession(ctx, &votingRepo.GetSessionInput{SessionID: id})
	if err != nil {
		if errors.Is(err, votingRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// CastVote records a vote. The last vote owed finalizes the session.
func (s *service) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}
	voterID := identity.Normalize(input.VoterID)
	targetID := identity.Normalize(input.TargetID)

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.VotingStatusActive {
		return nil, ErrSessionNotActive
	}
	if !session.IsEligible(voterID) {
		return nil, ErrNotEligibleVoter
	}
	if voterID == targetID {
		return nil, ErrSelfVote
	}

	target, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: targetID})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	if target.IsEliminated {
		return nil, ErrTargetEliminated
	}

	updated, err := s.votingRepo.MutateSession(ctx, &votingRepo.MutateSessionInput{
		SessionID: session.ID,
		Mutate: func(v *models.VotingSession) error {
			if v.Status != models.VotingStatusActive {
				return ErrSessionNotActive
			}
			if v.Votes == nil {
				v.Votes = map[string]string{}
			}
			v.Votes[voterID] = targetID
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := &CastVoteOutput{
		Session: updated,
		Message: "Vote recorded!",
	}

	if updated.AllVoted() {
		result, err := s.FinalizeVotingSession(ctx, &FinalizeVotingSessionInput{SessionID: updated.ID})
		switch {
		case errors.Is(err, ErrSessionNotActive):
			// another caller finalized first
		case err != nil:
			return nil, err
		default:
			out.Finalized = true
			out.Result = result
			out.Session = result.Session
		}
	}

	return out, nil
}

// FinalizeVotingSession tallies the votes and eliminates the top candidate.
// It succeeds at most once per session.
func (s *service) FinalizeVotingSession(ctx context.Context, input *FinalizeVotingSessionInput) (*FinalizeVotingSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	players, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players.Players))
	for _, p := range players.Players {
		names[p.ID] = p.Name
	}

	now := s.clock.Now()
	session, err := s.votingRepo.MutateSession(ctx, &votingRepo.MutateSessionInput{
		SessionID: input.SessionID,
		Mutate: func(v *models.VotingSession) error {
			if v.Status != models.VotingStatusActive {
				return ErrSessionNotActive
			}
			counts := tally(v.Votes)
			eliminated, tied := pickEliminated(s.roller, counts)
			v.Status = models.VotingStatusCompleted
			v.EndedAt = &now
			v.Results = &models.VotingResults{
				Eliminated:     eliminated,
				EliminatedName: names[eliminated],
				VoteCount:      counts,
				TotalVotes:     len(v.Votes),
				Tied:           tied,
			}
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, votingRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.release(ctx, session)

	out := &FinalizeVotingSessionOutput{Session: session}

	if session.Results.Eliminated == "" {
		out.Message = "Nobody voted. No one was eliminated."
		s.emit(ctx, &events.EmitInput{
			Type:    models.EventVoteEnded,
			Message: out.Message,
			Data:    map[string]string{"sessionId": session.ID},
		})
		return out, nil
	}

	eliminated, err := s.playerRepo.MutatePlayer(ctx, &playerRepo.MutatePlayerInput{
		PlayerID: session.Results.Eliminated,
		Mutate: func(p *models.Player) error {
			p.IsEliminated = true
			p.EliminatedAt = &now
			p.CurrentMission = nil
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	out.Eliminated = eliminated

	votes := session.Results.VoteCount[eliminated.ID]
	out.Message = fmt.Sprintf("%s was eliminated with %d vote(s).", eliminated.Name, votes)
	if session.Results.Tied {
		out.Message = fmt.Sprintf("Tie! Fate chose %s, eliminated with %d vote(s).", eliminated.Name, votes)
	}

	log.Printf("Voting session %s eliminated %s", session.ID, eliminated.ID)

	s.emit(ctx, &events.EmitInput{
		Type:       models.EventPlayerEliminated,
		Message:    fmt.Sprintf("%s has been eliminated", eliminated.Name),
		PlayerID:   eliminated.ID,
		PlayerName: eliminated.Name,
		Data: map[string]string{
			"sessionId": session.ID,
			"votes":     fmt.Sprint(votes),
		},
	})

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

// CancelVotingSession closes an active session without a result
func (s *service) CancelVotingSession(ctx context.Context, input *CancelVotingSessionInput) (*models.VotingSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	now := s.clock.Now()
	session, err := s.votingRepo.MutateSession(ctx, &votingRepo.MutateSessionInput{
		SessionID: input.SessionID,
		Mutate: func(v *models.VotingSession) error {
			if v.Status != models.VotingStatusActive {
				return ErrSessionNotActive
			}
			v.Status = models.VotingStatusCancelled
			v.EndedAt = &now
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, votingRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.release(ctx, session)

	s.emit(ctx, &events.EmitInput{
		Type:    models.EventVoteEnded,
		Message: "The vote was cancelled",
		Data:    map[string]string{"sessionId": session.ID},
	})

	return session, nil
}

// GetActiveVotingSession returns the open session, or nil when there is none
func (s *service) GetActiveVotingSession(ctx context.Context) (*models.VotingSession, error) {
	out, err := s.votingRepo.ListSessions(ctx, &votingRepo.ListSessionsInput{Status: models.VotingStatusActive})
	if err != nil {
		return nil, err
	}
	if len(out.Sessions) == 0 {
		return nil, nil
	}
	return out.Sessions[0], nil
}

// GetVotingSession returns a session by ID
func (s *service) GetVotingSession(ctx context.Context, input *GetVotingSessionInput) (*models.VotingSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}
	return s.getSession(ctx, input.SessionID)
}

// CloseExpiredSessions finalizes every active session past its deadline
func (s *service) CloseExpiredSessions(ctx context.Context) (*CloseExpiredSessionsOutput, error) {
	out, err := s.votingRepo.ListSessions(ctx, &votingRepo.ListSessionsInput{Status: models.VotingStatusActive})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result := &CloseExpiredSessionsOutput{}
	for _, session := range out.Sessions {
		if !session.Expired(now) {
			continue
		}
		closed, err := s.FinalizeVotingSession(ctx, &FinalizeVotingSessionInput{SessionID: session.ID})
		if err != nil {
			if errors.Is(err, ErrSessionNotActive) {
				continue
			}
			return nil, err
		}
		log.Printf("Voting session %s closed at its deadline", session.ID)
		result.Closed = append(result.Closed, closed)
	}

	return result, nil
}

func (s *service) emit(ctx context.Context, input *events.EmitInput) {
	if _, err := s.events.Emit(ctx, input); err != nil {
		log.Printf("Failed to emit %s event: %v", input.Type, err)
	}
}
