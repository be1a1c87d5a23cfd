package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	"github.com/KirkDiggler/portal/internal/services/game"
	gameMocks "github.com/KirkDiggler/portal/internal/services/game/mocks"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"
)

const testAdminToken = "s3cret"

type ServerTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockGame *gameMocks.MockService
	server   *Server
	now      time.Time
}

func (s *ServerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ServerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGame = gameMocks.NewMockService(s.mockCtrl)
	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	var err error
	s.server, err = New(&Config{GameService: s.mockGame, AdminToken: testAdminToken})
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ServerTestSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.server.Router().ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) admin(method, path, body string) *httptest.ResponseRecorder {
	return s.do(method, path, body, "Authorization", "Bearer "+testAdminToken)
}

func (s *ServerTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)
}

func (s *ServerTestSuite) TestGetState() {
	s.mockGame.EXPECT().GetGameState(gomock.Any()).
		Return(&models.GameState{Status: models.GameStatusOngoing, PortalLevel: 12}, nil)

	rec := s.do(http.MethodGet, "/api/state", "")
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.True(gjson.Get(body, "success").Bool())
	s.Equal(int64(12), gjson.Get(body, "gameState.portalLevel").Int())
}

func (s *ServerTestSuite) TestGetStateBeforeSetup() {
	s.mockGame.EXPECT().GetGameState(gomock.Any()).Return(nil, game.ErrGameNotConfigured)

	rec := s.do(http.MethodGet, "/api/state", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.False(gjson.Get(rec.Body.String(), "success").Bool())
	s.Equal("The game has not been set up", gjson.Get(rec.Body.String(), "message").String())
}

func (s *ServerTestSuite) TestListPlayersHidesRoles() {
	alex := models.NewPlayer("a1", "Alex", models.RoleAltered, 2, s.now)
	hana := models.NewPlayer("h1", "Hana", models.RoleHuman, 0, s.now)
	hana.MissionsCompleted = []string{"m1", "m2"}
	s.mockGame.EXPECT().ListPlayers(gomock.Any(), &game.ListPlayersInput{ActiveOnly: true}).
		Return(&game.ListPlayersOutput{Players: []*models.Player{alex, hana}}, nil)

	rec := s.do(http.MethodGet, "/api/players?active=true", "")
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Equal(int64(2), gjson.Get(body, "players.#").Int())
	s.Equal("Alex", gjson.Get(body, "players.0.name").String())
	s.Equal(int64(2), gjson.Get(body, "players.1.missionsCompleted").Int())
	s.NotContains(body, "altered")
	s.NotContains(body, "traps")
}

func (s *ServerTestSuite) TestLogin() {
	alex := models.NewPlayer("a1", "Alex", models.RoleAltered, 2, s.now)
	s.mockGame.EXPECT().Login(gomock.Any(), &game.LoginInput{Code: "https://portal.example/p/A1"}).
		Return(&game.LoginOutput{Player: alex, Message: "Welcome, Alex!"}, nil)

	rec := s.do(http.MethodPost, "/api/login", `{"code":"https://portal.example/p/A1"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Welcome, Alex!", gjson.Get(rec.Body.String(), "message").String())
	s.Equal("altered", gjson.Get(rec.Body.String(), "player.role").String())
}

func (s *ServerTestSuite) TestLoginRequiresCode() {
	rec := s.do(http.MethodPost, "/api/login", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(gjson.Get(rec.Body.String(), "success").Bool())
}

func (s *ServerTestSuite) TestScan() {
	s.mockGame.EXPECT().ValidateScan(gomock.Any(), &mission.ValidateMissionInput{PlayerID: "h1", ScannedID: "a1"}).
		Return(&mission.ValidateMissionOutput{
			Success:          true,
			IsCorrectTarget:  true,
			Message:          "Mission complete!",
			PortalLevel:      9,
			PortalChange:     -1,
			MeetingTriggered: true,
			VotingSessionID:  "vote_1",
		}, nil)

	rec := s.do(http.MethodPost, "/api/scan", `{"playerId":"h1","scannedId":"a1"}`)
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.True(gjson.Get(body, "isCorrectTarget").Bool())
	s.Equal(int64(9), gjson.Get(body, "portalLevel").Int())
	s.Equal(int64(-1), gjson.Get(body, "portalChange").Int())
	s.Equal("vote_1", gjson.Get(body, "votingSessionId").String())
	s.False(gjson.Get(body, "winner").Exists())
}

func (s *ServerTestSuite) TestScanCooldown() {
	s.mockGame.EXPECT().ValidateScan(gomock.Any(), gomock.Any()).
		Return(nil, &mission.CooldownError{Kind: mission.CooldownFailure, Remaining: 29500 * time.Millisecond})

	rec := s.do(http.MethodPost, "/api/scan", `{"playerId":"h1","scannedId":"a1"}`)
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("30", rec.Header().Get("Retry-After"))
	s.Equal(int64(30), gjson.Get(rec.Body.String(), "retryAfterSeconds").Int())
	s.Equal("Too many wrong scans; wait 30s before trying again", gjson.Get(rec.Body.String(), "message").String())
}

func (s *ServerTestSuite) TestScanUnknownPlayer() {
	s.mockGame.EXPECT().ValidateScan(gomock.Any(), gomock.Any()).Return(nil, mission.ErrScannedPlayerNotFound)

	rec := s.do(http.MethodPost, "/api/scan", `{"playerId":"h1","scannedId":"zz"}`)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Scanned player not found", gjson.Get(rec.Body.String(), "message").String())
}

func (s *ServerTestSuite) TestCastVoteFinalizes() {
	session := &models.VotingSession{ID: "vote_1", Votes: map[string]string{"h1": "a1"}}
	alex := models.NewPlayer("a1", "Alex", models.RoleAltered, 2, s.now)
	s.mockGame.EXPECT().CastVote(gomock.Any(), &voting.CastVoteInput{SessionID: "vote_1", VoterID: "h1", TargetID: "a1"}).
		Return(&voting.CastVoteOutput{
			Session:   session,
			Message:   "Vote recorded!",
			Finalized: true,
			Result: &voting.FinalizeVotingSessionOutput{
				Session:    session,
				Eliminated: alex,
				Message:    "Alex was eliminated with 2 vote(s).",
				GameEnded:  true,
				Winner:     models.TeamHumans,
				EndReason:  models.EndReasonAllAlteredEliminated,
			},
		}, nil)

	rec := s.do(http.MethodPost, "/api/votes/sessions/vote_1/votes", `{"voterId":"h1","targetId":"a1"}`)
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.True(gjson.Get(body, "finalized").Bool())
	s.Equal("a1", gjson.Get(body, "result.eliminated.id").String())
	s.False(gjson.Get(body, "result.eliminated.role").Exists())
	s.Equal(string(models.TeamHumans), gjson.Get(body, "result.winner").String())
}

func (s *ServerTestSuite) TestActiveVote() {
	s.mockGame.EXPECT().GetActiveVotingSession(gomock.Any()).Return(nil, nil)

	rec := s.do(http.MethodGet, "/api/votes/active", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestListEventsLimit() {
	s.mockGame.EXPECT().ListEvents(gomock.Any(), &game.ListEventsInput{Limit: maxEventLimit}).
		Return(&game.ListEventsOutput{Events: []*models.GameEvent{{ID: "e1", Message: "Hana completed a mission"}}}, nil)

	rec := s.do(http.MethodGet, "/api/events?limit=5000", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hana completed a mission", gjson.Get(rec.Body.String(), "events.0.message").String())

	rec = s.do(http.MethodGet, "/api/events?limit=lots", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestAdminAuth() {
	rec := s.do(http.MethodPost, "/api/admin/start", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/start", "", "Authorization", "Bearer wrong")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/start", "", "Authorization", testAdminToken)
	s.Equal(http.StatusBadRequest, rec.Code)

	closed, err := New(&Config{GameService: s.mockGame})
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/start", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec = httptest.NewRecorder()
	closed.Router().ServeHTTP(rec, req)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestStartGameTwice() {
	s.mockGame.EXPECT().StartGame(gomock.Any()).Return(nil, game.ErrInvalidGameState)

	rec := s.admin(http.MethodPost, "/api/admin/start", "")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerTestSuite) TestSetPortalLevelAcceptsZero() {
	s.mockGame.EXPECT().SetPortalLevel(gomock.Any(), &game.SetPortalLevelInput{Level: 0}).
		Return(&models.GameState{Status: models.GameStatusEnded, Winner: models.TeamHumans}, nil)

	rec := s.admin(http.MethodPost, "/api/admin/portal", `{"level":0}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ended", gjson.Get(rec.Body.String(), "gameState.status").String())

	rec = s.admin(http.MethodPost, "/api/admin/portal", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestResetWithoutBody() {
	s.mockGame.EXPECT().ResetGame(gomock.Any(), &game.ResetGameInput{}).
		Return(&game.ResetGameOutput{PlayersReset: 4, Message: "Game reset: 4 players, 0 missions assigned"}, nil)

	rec := s.admin(http.MethodPost, "/api/admin/reset", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(int64(4), gjson.Get(rec.Body.String(), "playersReset").Int())
}

func (s *ServerTestSuite) TestSetupGame() {
	s.mockGame.EXPECT().SetupGame(gomock.Any(), &game.SetupGameInput{
		Players: []game.PlayerSpec{
			{ID: "a1", Name: "Alex", Role: models.RoleAltered},
			{ID: "h1", Name: "Hana", Role: models.RoleHuman},
		},
		AssignMissions: true,
	}).Return(&game.SetupGameOutput{GameState: &models.GameState{Status: models.GameStatusWaiting}, MissionsAssigned: 6}, nil)

	rec := s.admin(http.MethodPost, "/api/admin/setup",
		`{"players":[{"id":"a1","name":"Alex","role":"altered"},{"id":"h1","name":"Hana","role":"human"}],"assignMissions":true}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(int64(6), gjson.Get(rec.Body.String(), "missionsAssigned").Int())

	rec = s.admin(http.MethodPost, "/api/admin/setup", `{"players":[{"id":"a1"}]}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestBadgeRedirect() {
	rec := s.do(http.MethodGet, "/p/A1", "")
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/?code=A1", rec.Header().Get("Location"))
}

func (s *ServerTestSuite) TestWebSocketStreamsStateAndEvents() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store, err := document.NewRedis(&document.Config{RedisClient: client})
	s.Require().NoError(err)

	watch := func(collection string) *document.Subscription {
		sub, err := store.Watch(context.Background(), &document.WatchInput{
			Collection: collection,
			Handler:    func(*document.Change) {},
		})
		s.Require().NoError(err)
		return sub
	}
	stateSub := watch("ws_state")
	eventSub := watch("ws_events")

	s.mockGame.EXPECT().WatchGameState(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, handler func(*models.GameState)) (*document.Subscription, error) {
			handler(&models.GameState{Status: models.GameStatusOngoing, PortalLevel: 12})
			return stateSub, nil
		})
	live := make(chan func(*models.GameEvent), 1)
	s.mockGame.EXPECT().WatchEvents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.WatchEventsInput) (*document.Subscription, error) {
			s.False(input.IncludePrivate)
			live <- input.Handler
			return eventSub, nil
		})
	s.mockGame.EXPECT().ListEvents(gomock.Any(), &game.ListEventsInput{Limit: defaultEventLimit}).
		Return(&game.ListEventsOutput{Events: []*models.GameEvent{
			{ID: "e2", Type: models.EventPortalDecreased, Message: "The portal weakens to 11"},
			{ID: "e1", Type: models.EventGameStarted, Message: "The game has begun!"},
		}}, nil)

	srv := httptest.NewServer(s.server.Router())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	s.Require().NoError(err)
	defer conn.Close()
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	_, first, err := conn.ReadMessage()
	s.Require().NoError(err)
	s.Equal(MessageTypeState, gjson.GetBytes(first, "type").String())
	s.Equal(int64(12), gjson.GetBytes(first, "data.portalLevel").Int())

	_, second, err := conn.ReadMessage()
	s.Require().NoError(err)
	s.Equal(MessageTypeHistory, gjson.GetBytes(second, "type").String())
	s.Equal("e2", gjson.GetBytes(second, "data.0.id").String())
	s.Equal("e1", gjson.GetBytes(second, "data.1.id").String())

	handler := <-live
	handler(&models.GameEvent{ID: "e3", Type: models.EventMissionCompleted, Message: "Hana completed a mission"})

	_, third, err := conn.ReadMessage()
	s.Require().NoError(err)
	s.Equal(MessageTypeEvent, gjson.GetBytes(third, "type").String())
	s.Equal("Hana completed a mission", gjson.GetBytes(third, "data.message").String())

	s.Require().NoError(conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	select {
	case <-stateSub.Done():
	case <-time.After(2 * time.Second):
		s.Fail("state watch was not closed")
	}
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: game.ErrPlayerNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("failed to load: %w", voting.ErrSessionNotFound), want: http.StatusNotFound},
		{name: "rule violation", err: game.ErrInvalidLevel, want: http.StatusConflict},
		{name: "engine stopped", err: game.ErrEngineStopped, want: http.StatusServiceUnavailable},
		{name: "timeout", err: context.DeadlineExceeded, want: http.StatusServiceUnavailable},
		{name: "internal", err: errors.New("redis: connection refused"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
