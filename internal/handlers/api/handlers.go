package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/suspicion"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/gin-gonic/gin"
)

const (
	defaultEventLimit = 20
	maxEventLimit     = 200
)

type loginRequest struct {
	Code string `json:"code" binding:"required"`
}

type scanRequest struct {
	PlayerID  string `json:"playerId" binding:"required"`
	ScannedID string `json:"scannedId" binding:"required"`
}

type missionQueueRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Count    int    `json:"count"`
}

type inverseTrapRequest struct {
	AlteredID string `json:"alteredId" binding:"required"`
	TargetID  string `json:"targetId" binding:"required"`
}

type theftRequest struct {
	AlteredID       string `json:"alteredId" binding:"required"`
	TargetID        string `json:"targetId" binding:"required"`
	GuessedTargetID string `json:"guessedTargetId" binding:"required"`
}

type startVotingRequest struct {
	InitiatorID string `json:"initiatorId" binding:"required"`
}

type castVoteRequest struct {
	VoterID  string `json:"voterId" binding:"required"`
	TargetID string `json:"targetId" binding:"required"`
}

type suspectRequest struct {
	PlayerID  string `json:"playerId" binding:"required"`
	SuspectID string `json:"suspectId" binding:"required"`
}

func (s *Server) getState(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	state, err := s.game.GetGameState(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", gin.H{"gameState": state})
}

func (s *Server) listPlayers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.ListPlayers(ctx, &game.ListPlayersInput{ActiveOnly: c.Query("active") == "true"})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", gin.H{"players": viewsOf(out.Players)})
}

// getPlayer returns the full record; holding a badge code is the only
// credential the game has
func (s *Server) getPlayer(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	player, err := s.game.GetPlayer(ctx, &game.GetPlayerInput{PlayerID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", gin.H{"player": player})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "A player code is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.Login(ctx, &game.LoginInput{Code: req.Code})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, gin.H{"player": out.Player})
}

func (s *Server) scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "playerId and scannedId are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.ValidateScan(ctx, &mission.ValidateMissionInput{PlayerID: req.PlayerID, ScannedID: req.ScannedID})
	if err != nil {
		respondError(c, err)
		return
	}

	payload := gin.H{
		"isCorrectTarget":      out.IsCorrectTarget,
		"trapTriggered":        out.TrapTriggered,
		"portalLevel":          out.PortalLevel,
		"portalChange":         out.PortalChange,
		"nextWaitSeconds":      int(out.NextWait.Seconds()),
		"nextMission":          out.NextMission,
		"allMissionsCompleted": out.AllMissionsCompleted,
		"gameEnded":            out.GameEnded,
		"meetingTriggered":     out.MeetingTriggered,
	}
	if out.GameEnded {
		payload["winner"] = out.Winner
		payload["endReason"] = out.EndReason
	}
	if out.VotingSessionID != "" {
		payload["votingSessionId"] = out.VotingSessionID
	}
	ok(c, out.Message, payload)
}

func (s *Server) createMissionQueue(c *gin.Context) {
	var req missionQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "playerId is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.CreateMissionQueue(ctx, &mission.CreateMissionQueueInput{PlayerID: req.PlayerID, Count: req.Count})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, gin.H{"missions": out.Missions})
}

func (s *Server) activateInverseTrap(c *gin.Context) {
	var req inverseTrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "alteredId and targetId are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.ActivateInverseTrap(ctx, &trap.ActivateInverseTrapInput{AlteredID: req.AlteredID, TargetID: req.TargetID})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, gin.H{"trap": out.Trap, "trapsRemaining": out.TrapsRemaining})
}

func (s *Server) attemptTheft(c *gin.Context) {
	var req theftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "alteredId, targetId and guessedTargetId are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.AttemptMissionTheft(ctx, &trap.AttemptMissionTheftInput{
		AlteredID:       req.AlteredID,
		TargetID:        req.TargetID,
		GuessedTargetID: req.GuessedTargetID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	payload := gin.H{
		"correct":        out.Correct,
		"trapsRemaining": out.TrapsRemaining,
		"portalLevel":    out.PortalLevel,
		"gameEnded":      out.GameEnded,
	}
	if out.GameEnded {
		payload["winner"] = out.Winner
		payload["endReason"] = out.EndReason
	}
	ok(c, out.Message, payload)
}

func (s *Server) cancelTrap(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.CancelTrap(ctx, &trap.CancelTrapInput{AlteredID: c.Param("alteredId")})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, gin.H{"trapsRemaining": out.TrapsRemaining})
}

func (s *Server) getActiveVote(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := s.game.GetActiveVotingSession(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if session == nil {
		respond(c, http.StatusNotFound, "There is no vote open right now.", nil)
		return
	}
	ok(c, "", gin.H{"session": session})
}

func (s *Server) startVoting(c *gin.Context) {
	var req startVotingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "initiatorId is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.StartVoting(ctx, &voting.StartVotingSessionInput{InitiatorID: req.InitiatorID})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, out.Message, gin.H{"session": out.Session})
}

func (s *Server) castVote(c *gin.Context) {
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "voterId and targetId are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.CastVote(ctx, &voting.CastVoteInput{
		SessionID: c.Param("id"),
		VoterID:   req.VoterID,
		TargetID:  req.TargetID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	payload := gin.H{"session": out.Session, "finalized": out.Finalized}
	if out.Result != nil {
		payload["result"] = finalizePayload(out.Result)
	}
	ok(c, out.Message, payload)
}

func (s *Server) finalizeVoting(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.FinalizeVoting(ctx, &voting.FinalizeVotingSessionInput{SessionID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, finalizePayload(out))
}

func finalizePayload(out *voting.FinalizeVotingSessionOutput) gin.H {
	payload := gin.H{
		"session":   out.Session,
		"message":   out.Message,
		"gameEnded": out.GameEnded,
	}
	if out.Eliminated != nil {
		payload["eliminated"] = viewOf(out.Eliminated)
	}
	if out.GameEnded {
		payload["winner"] = out.Winner
		payload["endReason"] = out.EndReason
	}
	return payload
}

func (s *Server) listSuspects(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.ListSuspects(ctx, &suspicion.ListSuspectsInput{PlayerID: c.Param("playerId")})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", gin.H{"suspects": viewsOf(out.Suspects)})
}

func (s *Server) addSuspect(c *gin.Context) {
	s.changeSuspect(c, s.game.AddSuspect)
}

func (s *Server) removeSuspect(c *gin.Context) {
	s.changeSuspect(c, s.game.RemoveSuspect)
}

func (s *Server) changeSuspect(c *gin.Context, apply func(ctx context.Context, input *suspicion.SuspectInput) (*suspicion.SuspectOutput, error)) {
	var req suspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "playerId and suspectId are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := apply(ctx, &suspicion.SuspectInput{PlayerID: req.PlayerID, SuspectID: req.SuspectID})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, gin.H{"suspicions": out.Suspicions})
}

// listEvents only ever returns public events
func (s *Server) listEvents(c *gin.Context) {
	limit := defaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive number")
			return
		}
		limit = min(n, maxEventLimit)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.ListEvents(ctx, &game.ListEventsInput{Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", gin.H{"events": out.Events})
}

func (s *Server) getStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := s.game.GetEndGameStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", gin.H{"stats": stats})
}
