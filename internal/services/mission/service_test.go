package mission

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/portal/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/portal/internal/common/uuid/mocks"
	diceMocks "github.com/KirkDiggler/portal/internal/dice/mocks"
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	eventRepo "github.com/KirkDiggler/portal/internal/repositories/event"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	missionRepo "github.com/KirkDiggler/portal/internal/repositories/mission"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/endgame"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/messaging"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MissionServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockClock     *mocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	mockRoller    *diceMocks.MockRoller
	mr            *miniredis.Miniredis
	client        *redis.Client
	playerRepo    playerRepo.Repository
	missionRepo   missionRepo.Repository
	gameStateRepo gameStateRepo.Repository
	events        events.Service
	traps         trap.Service
	service       Service
	ctx           context.Context
	now           time.Time
	seq           int

	// rollFn overrides the default roll of 1
	rollFn func(sides int) int
}

func (s *MissionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)

	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.seq = 0
	s.rollFn = nil
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.seq++
		return fmt.Sprintf("%d", s.seq)
	}).AnyTimes()
	s.mockRoller.EXPECT().Roll(gomock.Any()).DoAndReturn(func(sides int) int {
		if s.rollFn != nil {
			return s.rollFn(sides)
		}
		return 1
	}).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	store, err := document.NewRedis(&document.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.playerRepo, err = playerRepo.New(&playerRepo.Config{Store: store})
	s.Require().NoError(err)
	s.missionRepo, err = missionRepo.New(&missionRepo.Config{Store: store})
	s.Require().NoError(err)
	s.gameStateRepo, err = gameStateRepo.New(&gameStateRepo.Config{Store: store})
	s.Require().NoError(err)
	votes, err := votingRepo.New(&votingRepo.Config{Store: store})
	s.Require().NoError(err)
	eventStore, err := eventRepo.New(&eventRepo.Config{Store: store})
	s.Require().NoError(err)
	s.events, err = events.New(&events.Config{EventRepo: eventStore, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)

	msgs, err := messaging.NewService(&messaging.ServiceConfig{DiceRoller: s.mockRoller})
	s.Require().NoError(err)
	ender, err := endgame.New(&endgame.Config{
		PlayerRepo:    s.playerRepo,
		GameStateRepo: s.gameStateRepo,
		VotingRepo:    votes,
		Events:        s.events,
		Clock:         s.mockClock,
	})
	s.Require().NoError(err)
	s.traps, err = trap.New(&trap.Config{
		PlayerRepo:    s.playerRepo,
		MissionRepo:   s.missionRepo,
		GameStateRepo: s.gameStateRepo,
		Events:        s.events,
		Messaging:     msgs,
		EndGame:       ender,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	meetings, err := voting.New(&voting.Config{
		PlayerRepo:    s.playerRepo,
		VotingRepo:    votes,
		GameStateRepo: s.gameStateRepo,
		Events:        s.events,
		EndGame:       ender,
		DiceRoller:    s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	s.service, err = New(&Config{
		PlayerRepo:    s.playerRepo,
		MissionRepo:   s.missionRepo,
		GameStateRepo: s.gameStateRepo,
		Events:        s.events,
		Messaging:     msgs,
		Traps:         s.traps,
		EndGame:       ender,
		Meetings:      meetings,
		DiceRoller:    s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	s.ctx = context.Background()

	state := models.NewGameState(models.DefaultPortalLevel, nil)
	state.Status = models.GameStatusOngoing
	s.Require().NoError(s.gameStateRepo.SaveGameState(s.ctx, &gameStateRepo.SaveGameStateInput{GameState: state}))

	s.addPlayer("a1", "Alex", models.RoleAltered)
	s.addPlayer("h1", "Hana", models.RoleHuman)
	s.addPlayer("h2", "Dana", models.RoleHuman)
	s.addPlayer("h3", "Iris", models.RoleHuman)
}

func (s *MissionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func (s *MissionServiceTestSuite) addPlayer(id, name string, role models.PlayerRole) {
	p := models.NewPlayer(id, name, role, models.DefaultTrapUses, s.now)
	s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: p}))
}

func (s *MissionServiceTestSuite) getPlayer(id string) *models.Player {
	p, err := s.playerRepo.GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: id})
	s.Require().NoError(err)
	return p
}

func (s *MissionServiceTestSuite) mutateState(fn func(g *models.GameState)) {
	_, err := s.gameStateRepo.MutateGameState(s.ctx, &gameStateRepo.MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			fn(g)
			return nil
		},
	})
	s.Require().NoError(err)
}

// assign gives the player a current mission on target plus queued follow-ups
func (s *MissionServiceTestSuite) assign(playerID, targetID string, queued ...string) *models.Mission {
	p := s.getPlayer(playerID)
	target := s.getPlayer(targetID)
	current := &models.Mission{
		ID:         "mission_" + playerID + "_" + targetID,
		AssigneeID: playerID,
		TargetID:   targetID,
		TargetName: target.Name,
		Tier:       1,
		Silent:     p.IsAltered(),
		CreatedAt:  s.now,
	}
	p.CurrentMission = current
	p.MissionQueue = []*models.Mission{}
	for i, id := range queued {
		p.MissionQueue = append(p.MissionQueue, &models.Mission{
			ID:         fmt.Sprintf("mission_%s_q%d", playerID, i),
			AssigneeID: playerID,
			TargetID:   id,
			Tier:       i + 2,
			Silent:     p.IsAltered(),
		})
	}
	s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: p}))
	s.Require().NoError(s.missionRepo.SaveMission(s.ctx, &missionRepo.SaveMissionInput{Mission: current}))
	return current
}

func (s *MissionServiceTestSuite) scan(playerID, scanned string) (*ValidateMissionOutput, error) {
	return s.service.ValidateMission(s.ctx, &ValidateMissionInput{PlayerID: playerID, ScannedID: scanned})
}

func (s *MissionServiceTestSuite) eventTypes(includePrivate bool) []models.EventType {
	out, err := s.events.ListRecent(s.ctx, &events.ListRecentInput{IncludePrivate: includePrivate})
	s.Require().NoError(err)
	types := make([]models.EventType, 0, len(out.Events))
	for _, e := range out.Events {
		types = append(types, e.Type)
	}
	return types
}

func (s *MissionServiceTestSuite) TestCreateMissionPicksRandomTarget() {
	out, err := s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "h1", Tier: 1})
	s.Require().NoError(err)

	m := out.Mission
	s.Equal("mission_1", m.ID)
	s.Equal("h1", m.AssigneeID)
	s.Equal("Hana", m.AssigneeName)
	s.Equal("a1", m.TargetID)
	s.Equal("Alex", m.TargetName)
	s.Equal("Seek the one who wears blue", m.Riddle)
	s.False(m.Silent)

	stored, err := s.missionRepo.GetMission(s.ctx, &missionRepo.GetMissionInput{MissionID: m.ID})
	s.Require().NoError(err)
	s.Equal(m.TargetID, stored.TargetID)
}

func (s *MissionServiceTestSuite) TestCreateMissionSkipsSelfAndEliminated() {
	h2 := s.getPlayer("h2")
	h2.IsEliminated = true
	s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: h2}))

	// candidates for a1 are h1 and h3; the last roll picks h3
	s.rollFn = func(sides int) int { return sides }

	out, err := s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "a1", Tier: 2})
	s.Require().NoError(err)
	s.Equal("h3", out.Mission.TargetID)
	s.True(out.Mission.Silent)
	s.Equal(2, out.Mission.Tier)
}

func (s *MissionServiceTestSuite) TestCreateMissionWithTarget() {
	out, err := s.service.CreateMission(s.ctx, &CreateMissionInput{
		PlayerID: "h1",
		Tier:     7,
		Target:   &TargetRef{ID: "H3"},
	})
	s.Require().NoError(err)
	s.Equal("h3", out.Mission.TargetID)
	s.Equal("Iris", out.Mission.TargetName)
	s.Equal(models.MinMissionTier, out.Mission.Tier)

	_, err = s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "h1", Target: &TargetRef{ID: "h1"}})
	s.ErrorIs(err, ErrInvalidTarget)

	// a name does not vouch for a player that was never created
	_, err = s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "h1", Target: &TargetRef{ID: "ghost", Name: "Ghost"}})
	s.ErrorIs(err, ErrInvalidTarget)

	h2 := s.getPlayer("h2")
	h2.IsEliminated = true
	s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: h2}))
	_, err = s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "h1", Target: &TargetRef{ID: "h2"}})
	s.ErrorIs(err, ErrInvalidTarget)
	_, err = s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "h1", Target: &TargetRef{ID: "h2", Name: "Dana"}})
	s.ErrorIs(err, ErrInvalidTarget)

	missions, err := s.missionRepo.ListMissions(s.ctx, &missionRepo.ListMissionsInput{})
	s.Require().NoError(err)
	s.Len(missions.Missions, 1)
}

func (s *MissionServiceTestSuite) TestCreateMissionErrors() {
	_, err := s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "ghost", Tier: 1})
	s.ErrorIs(err, ErrPlayerNotFound)

	for _, id := range []string{"a1", "h2", "h3"} {
		s.Require().NoError(s.playerRepo.DeletePlayer(s.ctx, &playerRepo.DeletePlayerInput{PlayerID: id}))
	}
	_, err = s.service.CreateMission(s.ctx, &CreateMissionInput{PlayerID: "h1", Tier: 1})
	s.ErrorIs(err, ErrNoEligibleTarget)
}

func (s *MissionServiceTestSuite) TestCreateMissionQueue() {
	out, err := s.service.CreateMissionQueue(s.ctx, &CreateMissionQueueInput{PlayerID: "h1"})
	s.Require().NoError(err)
	s.Require().Len(out.Missions, 3)
	s.Equal("3 missions created for Hana", out.Message)

	for i, m := range out.Missions {
		s.Equal(i+1, m.Tier)
	}

	h1 := s.getPlayer("h1")
	s.Require().NotNil(h1.CurrentMission)
	s.Equal(out.Missions[0].ID, h1.CurrentMission.ID)
	s.Len(h1.MissionQueue, 2)
	s.False(h1.AllMissionsCompleted)

	_, err = s.service.CreateMissionQueue(s.ctx, &CreateMissionQueueInput{PlayerID: "h1"})
	s.ErrorIs(err, ErrMissionsPending)
}

func (s *MissionServiceTestSuite) TestCreateMissionQueueCapsAtThreeTiers() {
	out, err := s.service.CreateMissionQueue(s.ctx, &CreateMissionQueueInput{PlayerID: "h2", Count: 8})
	s.Require().NoError(err)
	s.Len(out.Missions, 3)

	out, err = s.service.CreateMissionQueue(s.ctx, &CreateMissionQueueInput{PlayerID: "h3", Count: 1})
	s.Require().NoError(err)
	s.Len(out.Missions, 1)
	s.Empty(s.getPlayer("h3").MissionQueue)
}

func (s *MissionServiceTestSuite) TestAssignInitialMissions() {
	s.assign("h1", "h2")

	out, err := s.service.AssignInitialMissions(s.ctx, &AssignInitialMissionsInput{})
	s.Require().NoError(err)
	s.Equal(map[string]int{"a1": 3, "h2": 3, "h3": 3}, out.Assigned)
	s.Empty(out.Skipped)
}

func (s *MissionServiceTestSuite) TestScenarioHumanCompletesMission() {
	mission := s.assign("h1", "h2")

	out, err := s.scan("h1", "H2 ")
	s.Require().NoError(err)
	s.True(out.Success)
	s.True(out.IsCorrectTarget)
	s.Equal(9, out.PortalLevel)
	s.Equal(-1, out.PortalChange)
	s.True(out.AllMissionsCompleted)
	s.Nil(out.NextMission)

	h1 := s.getPlayer("h1")
	s.Contains(h1.MissionsCompleted, mission.ID)
	s.Nil(h1.CurrentMission)
	s.True(h1.AllMissionsCompleted)
	s.Equal(0, h1.ConsecutiveFailures)
	s.Require().NotNil(h1.LastValidationAt)

	stored, err := s.missionRepo.GetMission(s.ctx, &missionRepo.GetMissionInput{MissionID: mission.ID})
	s.Require().NoError(err)
	s.True(stored.Completed)
	s.Equal(models.MissionResultSuccess, stored.Result)

	state, err := s.gameStateRepo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, state.HumanFragments)
	s.Equal(1, state.TotalMissionsCompleted)

	s.ElementsMatch([]models.EventType{models.EventMissionCompleted, models.EventPortalDecreased}, s.eventTypes(false))
}

func (s *MissionServiceTestSuite) TestSuccessAdvancesQueue() {
	s.assign("h1", "h2", "h3")

	out, err := s.scan("h1", "h2")
	s.Require().NoError(err)
	s.False(out.AllMissionsCompleted)
	s.Require().NotNil(out.NextMission)
	s.Equal("h3", out.NextMission.TargetID)

	h1 := s.getPlayer("h1")
	s.Require().NotNil(h1.CurrentMission)
	s.Equal("h3", h1.CurrentMission.TargetID)
	s.Empty(h1.MissionQueue)
	s.False(h1.AllMissionsCompleted)
}

func (s *MissionServiceTestSuite) TestSilentMissionStaysPrivate() {
	s.assign("a1", "h1")

	out, err := s.scan("a1", "h1")
	s.Require().NoError(err)
	s.True(out.IsCorrectTarget)
	s.Equal(11, out.PortalLevel)
	s.Equal(1, out.PortalChange)

	s.Empty(s.eventTypes(false))
	s.ElementsMatch([]models.EventType{models.EventMissionCompleted, models.EventPortalIncreased}, s.eventTypes(true))

	state, err := s.gameStateRepo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, state.AlteredSuccesses)
}

func (s *MissionServiceTestSuite) TestMismatchEscalatesCooldown() {
	s.assign("h1", "h2")

	out, err := s.scan("h1", "h3")
	s.Require().NoError(err)
	s.True(out.Success)
	s.False(out.IsCorrectTarget)
	s.Equal(time.Minute, out.NextWait)
	s.Contains(out.Message, "Iris")

	h1 := s.getPlayer("h1")
	s.Equal(1, h1.ConsecutiveFailures)
	s.NotNil(h1.CurrentMission)

	// blocked attempts are not counted
	_, err = s.scan("h1", "h3")
	s.ErrorIs(err, ErrCooldownActive)
	var cd *CooldownError
	s.Require().ErrorAs(err, &cd)
	s.Equal(CooldownFailure, cd.Kind)
	s.Equal(1, s.getPlayer("h1").ConsecutiveFailures)

	s.now = s.now.Add(time.Minute)
	out, err = s.scan("h1", "a1")
	s.Require().NoError(err)
	s.Equal(5*time.Minute, out.NextWait)

	state, err := s.gameStateRepo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.DefaultPortalLevel, state.PortalLevel)
}

func (s *MissionServiceTestSuite) TestSuccessCooldown() {
	s.assign("h1", "h2", "h3")

	_, err := s.scan("h1", "h2")
	s.Require().NoError(err)

	s.now = s.now.Add(14 * time.Minute)
	_, err = s.scan("h1", "h3")
	var cd *CooldownError
	s.Require().ErrorAs(err, &cd)
	s.Equal(CooldownSuccess, cd.Kind)
	s.Equal(time.Minute, cd.Remaining)

	s.now = s.now.Add(time.Minute)
	out, err := s.scan("h1", "h3")
	s.Require().NoError(err)
	s.True(out.IsCorrectTarget)
}

func (s *MissionServiceTestSuite) TestValidationErrors() {
	_, err := s.scan("h1", "  ")
	s.ErrorIs(err, ErrEmptyScan)

	_, err = s.scan("ghost", "h2")
	s.ErrorIs(err, ErrPlayerNotFound)

	_, err = s.scan("h1", "h2")
	s.ErrorIs(err, ErrNoActiveMission)

	s.assign("h1", "h2")
	_, err = s.scan("h1", "nobody")
	s.ErrorIs(err, ErrScannedPlayerNotFound)

	h1 := s.getPlayer("h1")
	h1.IsEliminated = true
	s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: h1}))
	_, err = s.scan("h1", "h2")
	s.ErrorIs(err, ErrPlayerEliminated)
}

func (s *MissionServiceTestSuite) TestRejectsScansAfterGameEnd() {
	s.assign("h1", "h2")
	s.mutateState(func(g *models.GameState) { g.Status = models.GameStatusEnded })

	_, err := s.scan("h1", "h2")
	s.ErrorIs(err, ErrGameEnded)
}

func (s *MissionServiceTestSuite) TestRejectsScansBeforeStart() {
	s.assign("h1", "h2")
	s.mutateState(func(g *models.GameState) { g.Status = models.GameStatusWaiting })

	_, err := s.scan("h1", "h2")
	s.ErrorIs(err, ErrGameNotStarted)

	state, err := s.gameStateRepo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.DefaultPortalLevel, state.PortalLevel)
	s.Zero(state.TotalMissionsCompleted)
	s.NotNil(s.getPlayer("h1").CurrentMission)
}

func (s *MissionServiceTestSuite) TestScenarioInverseTrapInterceptsScan() {
	s.assign("h1", "h2")
	trapOut, err := s.traps.ActivateInverseTrap(s.ctx, &trap.ActivateInverseTrapInput{AlteredID: "a1", TargetID: "h1"})
	s.Require().NoError(err)
	s.Equal(1, trapOut.TrapsRemaining)

	out, err := s.scan("h1", "a1")
	s.Require().NoError(err)
	s.True(out.Success)
	s.False(out.IsCorrectTarget)
	s.True(out.TrapTriggered)
	s.Equal(11, out.PortalLevel)

	h1 := s.getPlayer("h1")
	s.Equal(1, h1.ConsecutiveFailures)
	s.NotNil(h1.CurrentMission)

	a1 := s.getPlayer("a1")
	s.Nil(a1.Traps.Active)
	s.Len(a1.Traps.Completed, 1)
}

func (s *MissionServiceTestSuite) TestTrapForAnotherHumanDoesNotIntercept() {
	s.assign("h1", "a1")
	s.assign("h2", "h3")
	_, err := s.traps.ActivateInverseTrap(s.ctx, &trap.ActivateInverseTrapInput{AlteredID: "a1", TargetID: "h2"})
	s.Require().NoError(err)

	out, err := s.scan("h1", "a1")
	s.Require().NoError(err)
	s.False(out.TrapTriggered)
	s.True(out.IsCorrectTarget)
	s.NotNil(s.getPlayer("a1").Traps.Active)
}

func (s *MissionServiceTestSuite) TestScenarioPortalClosesAndGameEnds() {
	started := s.now
	s.mutateState(func(g *models.GameState) { g.StartedAt = &started })
	s.assign("h1", "h2", "a1", "h3", "h2")
	s.assign("h2", "h3", "h1", "a1")
	s.assign("h3", "h1", "h2", "a1")

	scans := []struct{ scanner, scanned string }{
		{"h1", "h2"}, {"h2", "h3"}, {"h3", "h1"},
		{"h1", "a1"}, {"h2", "h1"}, {"h3", "h2"},
		{"h1", "h3"}, {"h2", "a1"}, {"h3", "a1"},
		{"h1", "h2"},
	}

	var out *ValidateMissionOutput
	for i, sc := range scans {
		var err error
		out, err = s.scan(sc.scanner, sc.scanned)
		s.Require().NoError(err, "scan %d", i+1)
		s.Require().True(out.IsCorrectTarget, "scan %d", i+1)
		s.Equal(models.DefaultPortalLevel-(i+1), out.PortalLevel, "scan %d", i+1)
		s.Equal(i+1 == 7, out.MeetingTriggered, "scan %d", i+1)
		s.Equal(i+1 == len(scans), out.GameEnded, "scan %d", i+1)

		// a second scan right away is held by the success cooldown
		if i+1 < len(scans) {
			_, err = s.scan(sc.scanner, sc.scanned)
			var cd *CooldownError
			s.Require().ErrorAs(err, &cd, "scan %d", i+1)
			s.Equal(CooldownSuccess, cd.Kind)
		}
		s.now = s.now.Add(SuccessCooldown + time.Minute)
	}

	s.Equal(models.TeamHumans, out.Winner)
	s.Equal(models.EndReasonPortalClosed, out.EndReason)
	s.Equal(0, out.PortalLevel)
	s.True(out.AllMissionsCompleted)

	state, err := s.gameStateRepo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.GameStatusEnded, state.Status)
	s.Equal(len(scans), state.TotalMissionsCompleted)
	s.Equal(len(scans), state.HumanFragments)

	stats := state.EndGameStats
	s.Require().NotNil(stats)
	s.Equal(len(scans), stats.TotalMissionsCompleted)
	s.Equal(0, stats.FinalPortalLevel)
	s.Equal(time.Duration(len(scans)-1)*(SuccessCooldown+time.Minute), stats.Duration)

	sum := 0
	completed := map[string]int{}
	for _, ps := range stats.PlayerStats {
		sum += ps.MissionsCompleted
		completed[ps.PlayerID] = ps.MissionsCompleted
	}
	s.Equal(state.TotalMissionsCompleted, sum)
	s.Equal(map[string]int{"a1": 0, "h1": 4, "h2": 3, "h3": 3}, completed)

	for _, id := range []string{"h1", "h2", "h3"} {
		p := s.getPlayer(id)
		s.Nil(p.CurrentMission, id)
		s.Empty(p.MissionQueue, id)
		s.True(p.AllMissionsCompleted, id)
	}

	_, err = s.scan("h2", "h3")
	s.ErrorIs(err, ErrGameEnded)
}

func (s *MissionServiceTestSuite) TestMeetingThresholdOpensVote() {
	s.mutateState(func(g *models.GameState) { g.TotalMissionsCompleted = 6 })
	s.assign("h1", "h2")

	out, err := s.scan("h1", "h2")
	s.Require().NoError(err)
	s.True(out.MeetingTriggered)
	s.NotEmpty(out.VotingSessionID)

	s.Contains(s.eventTypes(false), models.EventMeetingTriggered)
}

func TestMissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MissionServiceTestSuite))
}
