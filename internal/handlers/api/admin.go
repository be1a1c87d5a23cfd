package api

import (
	"net/http"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/gin-gonic/gin"
)

type playerRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

type setupRequest struct {
	Players        []playerRequest `json:"players" binding:"required,dive"`
	AssignMissions bool            `json:"assignMissions"`
}

type resetRequest struct {
	Reassign bool `json:"reassign"`
}

type portalRequest struct {
	Level *int `json:"level" binding:"required"`
}

func (s *Server) setupGame(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Every player needs an id, a name and a role")
		return
	}

	specs := make([]game.PlayerSpec, 0, len(req.Players))
	for _, p := range req.Players {
		specs = append(specs, game.PlayerSpec{ID: p.ID, Name: p.Name, Role: models.PlayerRole(p.Role)})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.SetupGame(ctx, &game.SetupGameInput{Players: specs, AssignMissions: req.AssignMissions})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Game created", gin.H{
		"gameState":        out.GameState,
		"players":          out.Players,
		"missionsAssigned": out.MissionsAssigned,
	})
}

func (s *Server) startGame(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	state, err := s.game.StartGame(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "The game has begun!", gin.H{"gameState": state})
}

func (s *Server) resetGame(c *gin.Context) {
	var req resetRequest
	// An empty body resets without reassigning
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid reset request")
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := s.game.ResetGame(ctx, &game.ResetGameInput{Reassign: req.Reassign})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out.Message, gin.H{"playersReset": out.PlayersReset, "missionsAssigned": out.MissionsAssigned})
}

func (s *Server) setPortalLevel(c *gin.Context) {
	var req portalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "level is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	state, err := s.game.SetPortalLevel(ctx, &game.SetPortalLevelInput{Level: *req.Level})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Portal level updated", gin.H{"gameState": state})
}

func (s *Server) createPlayer(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "id, name and role are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	player, err := s.game.CreatePlayer(ctx, &game.CreatePlayerInput{ID: req.ID, Name: req.Name, Role: models.PlayerRole(req.Role)})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Player created", gin.H{"player": player})
}

func (s *Server) deletePlayer(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.game.DeletePlayer(ctx, &game.DeletePlayerInput{PlayerID: c.Param("id")}); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Player deleted", nil)
}

func (s *Server) cancelVoting(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := s.game.CancelVoting(ctx, &voting.CancelVotingSessionInput{SessionID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Vote cancelled", gin.H{"session": session})
}
