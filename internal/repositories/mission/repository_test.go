package mission

import (
	"context"
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
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
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
	s.testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func (s *RepositoryTestSuite) mission(id, assignee string, offset time.Duration) *models.Mission {
	return &models.Mission{
		ID:         id,
		AssigneeID: assignee,
		TargetID:   "target",
		Tier:       1,
		CreatedAt:  s.testNow.Add(offset),
	}
}

func (s *RepositoryTestSuite) TestSaveGetResolve() {
	s.Require().NoError(s.repo.SaveMission(s.ctx, &SaveMissionInput{Mission: s.mission("m1", "alice", 0)}))

	resolved, err := s.repo.ResolveMission(s.ctx, &ResolveMissionInput{
		MissionID:  "m1",
		Result:     models.MissionResultSuccess,
		ResolvedAt: s.testNow.Add(time.Minute),
	})
	s.Require().NoError(err)
	s.True(resolved.Completed)
	s.Equal(models.MissionResultSuccess, resolved.Result)
	s.Require().NotNil(resolved.CompletedAt)
	s.True(resolved.CompletedAt.Equal(s.testNow.Add(time.Minute)))

	got, err := s.repo.GetMission(s.ctx, &GetMissionInput{MissionID: "m1"})
	s.Require().NoError(err)
	s.True(got.Completed)
}

func (s *RepositoryTestSuite) TestResolveMissingMission() {
	_, err := s.repo.ResolveMission(s.ctx, &ResolveMissionInput{MissionID: "nope", Result: models.MissionResultStolen})
	s.ErrorIs(err, ErrMissionNotFound)
}

func (s *RepositoryTestSuite) TestListByAssignee() {
	s.Require().NoError(s.repo.SaveMission(s.ctx, &SaveMissionInput{Mission: s.mission("m2", "alice", time.Minute)}))
	s.Require().NoError(s.repo.SaveMission(s.ctx, &SaveMissionInput{Mission: s.mission("m1", "alice", 0)}))
	s.Require().NoError(s.repo.SaveMission(s.ctx, &SaveMissionInput{Mission: s.mission("m3", "bob", 0)}))

	out, err := s.repo.ListMissions(s.ctx, &ListMissionsInput{AssigneeID: "alice"})
	s.Require().NoError(err)
	s.Require().Len(out.Missions, 2)
	s.Equal("m1", out.Missions[0].ID)
	s.Equal("m2", out.Missions[1].ID)

	s.Require().NoError(s.repo.DeleteAllMissions(s.ctx))
	out, err = s.repo.ListMissions(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(out.Missions)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
