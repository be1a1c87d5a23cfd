package game_state

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	store, err := document.NewRedis(&document.Config{RedisClient: s.client})
	s.Require().NoError(err)
	repo, err := New(&Config{Store: store})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()

	s.Require().NoError(s.repo.SaveGameState(s.ctx, &SaveGameStateInput{
		GameState: models.NewGameState(models.DefaultPortalLevel, nil),
	}))
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func (s *RepositoryTestSuite) TestGetGameStateNotFound() {
	s.mr.FlushAll()
	_, err := s.repo.GetGameState(s.ctx)
	s.ErrorIs(err, ErrGameStateNotFound)
}

func (s *RepositoryTestSuite) TestNewGameStateDefaults() {
	g, err := s.repo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.GameStatusWaiting, g.Status)
	s.Equal(10, g.PortalLevel)
	s.Equal([]int{7, 14, 20}, g.MeetingThresholds)
}

func (s *RepositoryTestSuite) TestAdjustPortalCreditsRole() {
	out, err := s.repo.AdjustPortal(s.ctx, &AdjustPortalInput{Delta: -1, Role: models.RoleHuman, CountMission: true})
	s.Require().NoError(err)
	s.Equal(10, out.Previous)
	s.Equal(9, out.Current)
	s.Equal(1, out.GameState.HumanFragments)
	s.Equal(0, out.GameState.AlteredSuccesses)
	s.Equal(1, out.GameState.TotalMissionsCompleted)

	out, err = s.repo.AdjustPortal(s.ctx, &AdjustPortalInput{Delta: 2, Role: models.RoleAltered})
	s.Require().NoError(err)
	s.Equal(11, out.Current)
	s.Equal(1, out.GameState.AlteredSuccesses)
	s.Equal(1, out.GameState.TotalMissionsCompleted)
}

func (s *RepositoryTestSuite) TestAdjustPortalClamps() {
	for i := 0; i < 30; i++ {
		out, err := s.repo.AdjustPortal(s.ctx, &AdjustPortalInput{Delta: 2, Role: models.RoleAltered})
		s.Require().NoError(err)
		s.LessOrEqual(out.Current, models.PortalMax)
	}
	g, err := s.repo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.PortalMax, g.PortalLevel)

	for i := 0; i < 30; i++ {
		out, err := s.repo.AdjustPortal(s.ctx, &AdjustPortalInput{Delta: -1, Role: models.RoleHuman})
		s.Require().NoError(err)
		s.GreaterOrEqual(out.Current, models.PortalMin)
	}
	g, err = s.repo.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.PortalMin, g.PortalLevel)
}

func (s *RepositoryTestSuite) TestMutateClampsPortal() {
	g, err := s.repo.MutateGameState(s.ctx, &MutateGameStateInput{
		Mutate: func(g *models.GameState) error {
			g.PortalLevel = 99
			return nil
		},
	})
	s.Require().NoError(err)
	s.Equal(models.PortalMax, g.PortalLevel)
}

func (s *RepositoryTestSuite) TestIncrementCounter() {
	g, err := s.repo.IncrementCounter(s.ctx, &IncrementCounterInput{Counter: CounterMeetingsHeld, By: 1})
	s.Require().NoError(err)
	s.Equal(1, g.MeetingsHeld)
}

func (s *RepositoryTestSuite) TestWatchGameState() {
	levels := make(chan int, 4)
	sub, err := s.repo.WatchGameState(s.ctx, &WatchGameStateInput{
		Handler: func(c *document.Change) {
			var g models.GameState
			if json.Unmarshal(c.Data, &g) == nil {
				levels <- g.PortalLevel
			}
		},
	})
	s.Require().NoError(err)
	defer sub.Close()

	s.Equal(10, <-levels)

	_, err = s.repo.AdjustPortal(s.ctx, &AdjustPortalInput{Delta: -1})
	s.Require().NoError(err)

	select {
	case level := <-levels:
		s.Equal(9, level)
	case <-time.After(2 * time.Second):
		s.Fail("change was not delivered")
	}
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
