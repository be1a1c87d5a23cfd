package discord

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	"github.com/KirkDiggler/portal/internal/services/game"
	gameMocks "github.com/KirkDiggler/portal/internal/services/game/mocks"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PortalCommandTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockGame *gameMocks.MockService
	mr       *miniredis.Miniredis
	client   *redis.Client
	links    *documentLinks
	command  *PortalCommand
	ctx      context.Context
	now      time.Time
}

func (s *PortalCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGame = gameMocks.NewMockService(s.mockCtrl)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	store, err := document.NewRedis(&document.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.links, err = NewLinkStore(store)
	s.Require().NoError(err)
	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.links.now = func() time.Time { return s.now }

	s.command = NewPortalCommand(s.mockGame, s.links)
	s.ctx = context.Background()
}

func (s *PortalCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func (s *PortalCommandTestSuite) link(userID, playerID string) {
	s.Require().NoError(s.links.Link(s.ctx, userID, playerID))
}

func (s *PortalCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()
	s.Equal("portal", cmd.Name)

	names := make([]string, 0, len(cmd.Options))
	for _, opt := range cmd.Options {
		s.Equal(discordgo.ApplicationCommandOptionSubCommand, opt.Type)
		names = append(names, opt.Name)
	}
	s.Equal([]string{"login", "status", "mission", "scan", "trap", "steal", "canceltrap", "vote", "meeting", "suspect", "events"}, names)
}

func (s *PortalCommandTestSuite) TestLoginLinksUser() {
	alex := models.NewPlayer("a1", "Alex", models.RoleAltered, 2, s.now)
	s.mockGame.EXPECT().Login(gomock.Any(), &game.LoginInput{Code: "https://portal.example/p/A1"}).
		Return(&game.LoginOutput{Player: alex, Message: "Welcome, Alex!"}, nil)

	resp := s.command.dispatch(s.ctx, "u1", "login", map[string]string{"code": "https://portal.example/p/A1"})
	s.Equal("Welcome, Alex!", resp.Title)
	s.Contains(resp.Description, "ALTERED")
	s.True(resp.Ephemeral)
	s.Equal(colorAltered, resp.Color)

	playerID, err := s.links.PlayerFor(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("a1", playerID)
}

func (s *PortalCommandTestSuite) TestLoginUnknownBadge() {
	s.mockGame.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, game.ErrPlayerNotFound)

	resp := s.command.dispatch(s.ctx, "u1", "login", map[string]string{"code": "nobody"})
	s.Equal("Error", resp.Title)
	s.Equal("Player not found", resp.Description)

	_, err := s.links.PlayerFor(s.ctx, "u1")
	s.ErrorIs(err, ErrNotLinked)
}

func (s *PortalCommandTestSuite) TestUnlinkedUserIsAskedToLogIn() {
	resp := s.command.dispatch(s.ctx, "stranger", "scan", map[string]string{"code": "h1"})
	s.Equal(colorError, resp.Color)
	s.Contains(resp.Description, "/portal login")
}

func (s *PortalCommandTestSuite) TestScan() {
	s.link("u1", "h1")
	s.mockGame.EXPECT().ValidateScan(gomock.Any(), &mission.ValidateMissionInput{PlayerID: "h1", ScannedID: "A1"}).
		Return(&mission.ValidateMissionOutput{
			Success:         true,
			IsCorrectTarget: true,
			Message:         "Mission complete!",
			PortalLevel:     9,
			NextMission:     &models.Mission{Riddle: "Find the tallest"},
		}, nil)

	resp := s.command.dispatch(s.ctx, "u1", "scan", map[string]string{"code": "A1"})
	s.Equal("Mission complete!", resp.Title)
	s.Equal(colorSuccess, resp.Color)
	s.Require().Len(resp.Fields, 2)
	s.Contains(resp.Fields[0].Value, "9/20")
	s.Equal("Find the tallest", resp.Fields[1].Value)
}

func (s *PortalCommandTestSuite) TestScanMismatchShowsWait() {
	s.link("u1", "h1")
	s.mockGame.EXPECT().ValidateScan(gomock.Any(), gomock.Any()).Return(&mission.ValidateMissionOutput{
		Success:     true,
		Message:     "Wrong target! You scanned Dana. Next attempt in 5m0s.",
		PortalLevel: 10,
		NextWait:    5 * time.Minute,
	}, nil)

	resp := s.command.dispatch(s.ctx, "u1", "scan", map[string]string{"code": "h2"})
	s.Equal("Wrong target", resp.Title)
	s.Require().Len(resp.Fields, 2)
	s.Equal("5m0s", resp.Fields[1].Value)
}

func (s *PortalCommandTestSuite) TestScanCooldown() {
	s.link("u1", "h1")
	s.mockGame.EXPECT().ValidateScan(gomock.Any(), gomock.Any()).
		Return(nil, &mission.CooldownError{Kind: mission.CooldownFailure, Remaining: 30 * time.Second})

	resp := s.command.dispatch(s.ctx, "u1", "scan", map[string]string{"code": "a1"})
	s.Equal("Too many wrong scans; wait 30s before trying again", resp.Description)
}

func (s *PortalCommandTestSuite) TestVoteWithoutTargetShowsMenu() {
	s.link("u1", "h1")
	session := &models.VotingSession{
		ID:             "vote_1",
		EndsAt:         s.now.Add(5 * time.Minute),
		Votes:          map[string]string{"h1": "a1"},
		EligibleVoters: []string{"a1", "h1", "h2"},
	}
	s.mockGame.EXPECT().GetActiveVotingSession(gomock.Any()).Return(session, nil)
	s.mockGame.EXPECT().ListPlayers(gomock.Any(), &game.ListPlayersInput{ActiveOnly: true}).
		Return(&game.ListPlayersOutput{Players: []*models.Player{
			{ID: "a1", Name: "Alex"},
			{ID: "h1", Name: "Hana"},
			{ID: "h2", Name: "Dana"},
		}}, nil)

	resp := s.command.dispatch(s.ctx, "u1", "vote", map[string]string{})
	s.Require().Len(resp.Components, 1)
	menu, ok := resp.Components[0].(discordgo.SelectMenu)
	s.Require().True(ok)
	s.Equal(SelectCastVote, menu.CustomID)
	s.Require().Len(menu.Options, 2)
	s.Equal("a1", menu.Options[0].Value)
	s.True(menu.Options[0].Default)
	s.Equal("h2", menu.Options[1].Value)
}

func (s *PortalCommandTestSuite) TestVoteFinalizesSession() {
	s.link("u1", "h1")
	session := &models.VotingSession{ID: "vote_1", EligibleVoters: []string{"a1", "h1", "h2"}}
	s.mockGame.EXPECT().GetActiveVotingSession(gomock.Any()).Return(session, nil)
	s.mockGame.EXPECT().CastVote(gomock.Any(), &voting.CastVoteInput{SessionID: "vote_1", VoterID: "h1", TargetID: "a1"}).
		Return(&voting.CastVoteOutput{
			Session:   session,
			Message:   "Vote recorded!",
			Finalized: true,
			Result: &voting.FinalizeVotingSessionOutput{
				Message:   "Alex was eliminated with 2 vote(s).",
				GameEnded: true,
				Winner:    models.TeamHumans,
				EndReason: models.EndReasonAllAlteredEliminated,
			},
		}, nil)

	resp := s.command.dispatch(s.ctx, "u1", "vote", map[string]string{"target": "a1"})
	s.Equal("The vote is over", resp.Title)
	s.False(resp.Ephemeral)
	s.Require().Len(resp.Fields, 1)
	s.Equal("The humans won (all altered eliminated).", resp.Fields[0].Value)
}

func (s *PortalCommandTestSuite) TestVoteWithoutSession() {
	s.link("u1", "h1")
	s.mockGame.EXPECT().GetActiveVotingSession(gomock.Any()).Return(nil, nil)

	resp := s.command.dispatch(s.ctx, "u1", "vote", map[string]string{"target": "a1"})
	s.Equal("There is no vote open right now.", resp.Description)
}

func (s *PortalCommandTestSuite) TestEventsDoNotNeedLogin() {
	s.mockGame.EXPECT().ListEvents(gomock.Any(), &game.ListEventsInput{Limit: 10}).
		Return(&game.ListEventsOutput{Events: []*models.GameEvent{
			{Message: "Hana completed a mission", Timestamp: s.now},
		}}, nil)

	resp := s.command.dispatch(s.ctx, "stranger", "events", nil)
	s.Contains(resp.Description, "Hana completed a mission")
}

func (s *PortalCommandTestSuite) TestStatus() {
	s.link("u1", "a1")
	alex := models.NewPlayer("a1", "Alex", models.RoleAltered, 2, s.now)
	alex.Traps.Active = &models.Trap{TargetName: "Dana"}
	s.mockGame.EXPECT().GetPlayer(gomock.Any(), &game.GetPlayerInput{PlayerID: "a1"}).Return(alex, nil)
	s.mockGame.EXPECT().GetGameState(gomock.Any()).Return(&models.GameState{Status: models.GameStatusOngoing, PortalLevel: 12}, nil)
	s.mockGame.EXPECT().GetActiveVotingSession(gomock.Any()).Return(nil, nil)

	resp := s.command.dispatch(s.ctx, "u1", "status", nil)
	s.Equal("Alex's status", resp.Title)
	s.True(resp.Ephemeral)

	values := map[string]string{}
	for _, f := range resp.Fields {
		values[f.Name] = f.Value
	}
	s.Equal("ALTERED", values["Your role"])
	s.Equal("2 left, armed against Dana", values["Traps"])
	s.Contains(values["Portal"], "12/20")
}

func (s *PortalCommandTestSuite) TestUnknownSubcommand() {
	s.link("u1", "h1")
	resp := s.command.dispatch(s.ctx, "u1", "dance", nil)
	s.Equal("Unknown subcommand: dance", resp.Description)
}

func TestPortalCommandSuite(t *testing.T) {
	suite.Run(t, new(PortalCommandTestSuite))
}

func TestPortalBar(t *testing.T) {
	assert.Contains(t, portalBar(25), "20/20")
	assert.Contains(t, portalBar(0), "0/20")
	assert.Contains(t, portalBar(-3), "0/20")
}
