package endgame

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/portal/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/portal/internal/common/uuid/mocks"
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	eventRepo "github.com/KirkDiggler/portal/internal/repositories/event"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EndGameServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockClock     *mocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	mr            *miniredis.Miniredis
	client        *redis.Client
	playerRepo    playerRepo.Repository
	gameStateRepo gameStateRepo.Repository
	votingRepo    votingRepo.Repository
	events        events.Service
	service       Service
	ctx           context.Context
	now           time.Time
	startedAt     time.Time
	seq           int
}

func (s *EndGameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.startedAt = time.Date(2025, 4, 19, 11, 0, 0, 0, time.UTC)
	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.seq = 0
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.seq++
		return fmt.Sprintf("%d", s.seq)
	}).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	store, err := document.NewRedis(&document.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.playerRepo, err = playerRepo.New(&playerRepo.Config{Store: store})
	s.Require().NoError(err)
	s.gameStateRepo, err = gameStateRepo.New(&gameStateRepo.Config{Store: store})
	s.Require().NoError(err)
	s.votingRepo, err = votingRepo.New(&votingRepo.Config{Store: store})
	s.Require().NoError(err)
	eventStore, err := eventRepo.New(&eventRepo.Config{Store: store})
	s.Require().NoError(err)
	s.events, err = events.New(&events.Config{EventRepo: eventStore, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)

	s.service, err = New(&Config{
		PlayerRepo:    s.playerRepo,
		GameStateRepo: s.gameStateRepo,
		VotingRepo:    s.votingRepo,
		Events:        s.events,
		Clock:         s.mockClock,
	})
	s.Require().NoError(err)

	s.ctx = context.Background()

	state := models.NewGameState(models.DefaultPortalLevel, nil)
	state.Status = models.GameStatusOngoing
	state.StartedAt = &s.startedAt
	s.Require().NoError(s.gameStateRepo.SaveGameState(s.ctx, &gameStateRepo.SaveGameStateInput{GameState: state}))
}

func (s *EndGameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func (s *EndGameServiceTestSuite) addPlayer(id string, role models.PlayerRole, missions int, eliminated bool) {
	p := models.NewPlayer(id, "Player "+id, role, models.DefaultTrapUses, s.now)
	for i := 0; i < missions; i++ {
		p.MissionsCompleted = append(p.MissionsCompleted, fmt.Sprintf("%s-m%d", id, i))
	}
	p.IsEliminated = eliminated
	s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: p}))
}

func (s *EndGameServiceTestSuite) setPortal(level int) {
	_, err := s.gameStateRepo.MutateGameState(s.ctx, &gameStateRepo.MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			g.PortalLevel = level
			return nil
		},
	})
	s.Require().NoError(err)
}

func (s *EndGameServiceTestSuite) TestNoWinner() {
	s.addPlayer("a", models.RoleAltered, 0, false)
	s.addPlayer("h", models.RoleHuman, 0, false)

	out, err := s.service.CheckGameEnd(s.ctx)
	s.Require().NoError(err)
	s.False(out.Ended)
}

func (s *EndGameServiceTestSuite) TestPortalClosedWinsEvenWithAlteredAlive() {
	s.addPlayer("a", models.RoleAltered, 0, false)
	s.addPlayer("h", models.RoleHuman, 0, false)
	s.setPortal(0)

	out, err := s.service.CheckGameEnd(s.ctx)
	s.Require().NoError(err)
	s.True(out.Ended)
	s.Equal(models.TeamHumans, out.Winner)
	s.Equal(models.EndReasonPortalClosed, out.Reason)
	s.Equal("portal closed", out.ReasonText)
}

func (s *EndGameServiceTestSuite) TestPortalOpenedWinsEvenWithHumansAlive() {
	s.addPlayer("a", models.RoleAltered, 0, false)
	s.addPlayer("h", models.RoleHuman, 0, false)
	s.setPortal(20)

	out, err := s.service.CheckGameEnd(s.ctx)
	s.Require().NoError(err)
	s.True(out.Ended)
	s.Equal(models.TeamAltered, out.Winner)
	s.Equal(models.EndReasonPortalOpened, out.Reason)
}

func (s *EndGameServiceTestSuite) TestAllAlteredEliminated() {
	s.addPlayer("a", models.RoleAltered, 0, true)
	s.addPlayer("h", models.RoleHuman, 0, false)

	out, err := s.service.CheckGameEnd(s.ctx)
	s.Require().NoError(err)
	s.True(out.Ended)
	s.Equal(models.TeamHumans, out.Winner)
	s.Equal(models.EndReasonAllAlteredEliminated, out.Reason)
}

func (s *EndGameServiceTestSuite) TestAllHumansEliminated() {
	s.addPlayer("a", models.RoleAltered, 0, false)
	s.addPlayer("h", models.RoleHuman, 0, true)

	out, err := s.service.CheckGameEnd(s.ctx)
	s.Require().NoError(err)
	s.True(out.Ended)
	s.Equal(models.TeamAltered, out.Winner)
	s.Equal(models.EndReasonAllHumansEliminated, out.Reason)
}

func (s *EndGameServiceTestSuite) TestSideWithoutPlayersIsNotWipedOut() {
	s.addPlayer("h", models.RoleHuman, 0, false)

	out, err := s.service.CheckGameEnd(s.ctx)
	s.Require().NoError(err)
	s.False(out.Ended)
}

func (s *EndGameServiceTestSuite) TestTriggerGameEndBuildsStats() {
	s.addPlayer("a", models.RoleAltered, 2, false)
	s.addPlayer("h1", models.RoleHuman, 3, false)
	s.addPlayer("h2", models.RoleHuman, 5, true)
	s.addPlayer("h3", models.RoleHuman, 1, false)
	s.setPortal(0)

	s.Require().NoError(s.votingRepo.SaveSession(s.ctx, &votingRepo.SaveSessionInput{Session: &models.VotingSession{
		ID:        "v1",
		Status:    models.VotingStatusCompleted,
		StartedAt: s.now,
		Votes:     map[string]string{"h1": "h2", "a": "h2", "h3": "a"},
	}}))

	out, err := s.service.EndIfWon(s.ctx)
	s.Require().NoError(err)
	s.True(out.Ended)
	s.Require().NotNil(out.Stats)

	stats := out.Stats
	s.Equal(models.TeamHumans, stats.Winner)
	s.Equal(models.EndReasonPortalClosed, stats.EndReason)
	s.Equal(0, stats.FinalPortalLevel)
	s.Equal(11, stats.TotalMissionsCompleted)
	s.Equal(time.Hour, stats.Duration)
	s.Len(stats.PlayerStats, 4)

	byID := map[string]*models.PlayerStats{}
	for _, ps := range stats.PlayerStats {
		byID[ps.PlayerID] = ps
	}
	s.Equal(2, byID["h2"].VotesReceived)
	s.Equal(1, byID["a"].VotesReceived)

	// h2 has the most missions but was eliminated
	s.Require().NotNil(stats.MVP)
	s.Equal("h1", stats.MVP.PlayerID)

	state, err := s.gameStateRepo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.GameStatusEnded, state.Status)
	s.Equal(models.TeamHumans, state.Winner)
	s.Require().NotNil(state.EndedAt)

	feed, err := s.events.ListRecent(s.ctx, &events.ListRecentInput{})
	s.Require().NoError(err)
	s.Require().Len(feed.Events, 1)
	s.Equal(models.EventHumanVictory, feed.Events[0].Type)
}

func (s *EndGameServiceTestSuite) TestMVPFallsBackToEliminatedWinners() {
	s.addPlayer("a1", models.RoleAltered, 1, true)
	s.addPlayer("a2", models.RoleAltered, 4, true)
	s.addPlayer("h", models.RoleHuman, 0, false)

	out, err := s.service.TriggerGameEnd(s.ctx, &TriggerGameEndInput{
		Winner: models.TeamAltered,
		Reason: models.EndReasonPortalOpened,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Stats.MVP)
	s.Equal("a2", out.Stats.MVP.PlayerID)
}

func (s *EndGameServiceTestSuite) TestTriggerGameEndIsIdempotent() {
	s.addPlayer("a", models.RoleAltered, 0, false)
	s.addPlayer("h", models.RoleHuman, 0, false)

	first, err := s.service.TriggerGameEnd(s.ctx, &TriggerGameEndInput{Winner: models.TeamHumans, Reason: models.EndReasonPortalClosed})
	s.Require().NoError(err)
	s.False(first.AlreadyEnded)

	second, err := s.service.TriggerGameEnd(s.ctx, &TriggerGameEndInput{Winner: models.TeamAltered, Reason: models.EndReasonPortalOpened})
	s.Require().NoError(err)
	s.True(second.AlreadyEnded)
	s.Equal(models.TeamHumans, second.Stats.Winner)

	feed, err := s.events.ListRecent(s.ctx, &events.ListRecentInput{})
	s.Require().NoError(err)
	s.Len(feed.Events, 1)
}

func (s *EndGameServiceTestSuite) TestTriggerGameEndRejectsUnknownWinner() {
	_, err := s.service.TriggerGameEnd(s.ctx, &TriggerGameEndInput{Winner: "nobody"})
	s.ErrorIs(err, ErrInvalidWinner)
}

func (s *EndGameServiceTestSuite) TestGetEndGameStats() {
	_, err := s.service.GetEndGameStats(s.ctx)
	s.ErrorIs(err, ErrGameNotEnded)

	s.addPlayer("h", models.RoleHuman, 1, false)
	_, err = s.service.TriggerGameEnd(s.ctx, &TriggerGameEndInput{Winner: models.TeamHumans, Reason: models.EndReasonPortalClosed})
	s.Require().NoError(err)

	stats, err := s.service.GetEndGameStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.TotalMissionsCompleted)
}

func TestEndGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EndGameServiceTestSuite))
}
