// Package api serves the game over HTTP and streams live changes over a
// websocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/gin-gonic/gin"
)

const (
	requestTimeout  = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Config holds the configuration for the HTTP server
type Config struct {
	GameService game.Service

	// Addr is the listen address, e.g. ":8080"
	Addr string

	// AdminToken is the bearer token for /api/admin
	AdminToken string
}

// Server is the HTTP front end
type Server struct {
	game       game.Service
	adminToken string
	router     *gin.Engine
	httpServer *http.Server
}

// New creates the server and its routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	s := &Server{
		game:       cfg.GameService,
		adminToken: cfg.AdminToken,
	}
	s.router = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/ws", s.handleWebSocket)
	router.GET("/p/:id", s.badgeRedirect)

	api := router.Group("/api")
	api.GET("/state", s.getState)
	api.GET("/players", s.listPlayers)
	api.GET("/players/:id", s.getPlayer)
	api.POST("/login", s.login)
	api.POST("/scan", s.scan)
	api.POST("/missions/queue", s.createMissionQueue)
	api.POST("/traps/inverse", s.activateInverseTrap)
	api.POST("/traps/theft", s.attemptTheft)
	api.DELETE("/traps/:alteredId", s.cancelTrap)
	api.GET("/votes/active", s.getActiveVote)
	api.POST("/votes/sessions", s.startVoting)
	api.POST("/votes/sessions/:id/votes", s.castVote)
	api.POST("/votes/sessions/:id/finalize", s.finalizeVoting)
	api.GET("/suspects/:playerId", s.listSuspects)
	api.POST("/suspects", s.addSuspect)
	api.DELETE("/suspects", s.removeSuspect)
	api.GET("/events", s.listEvents)
	api.GET("/stats", s.getStats)

	admin := api.Group("/admin", AdminMiddleware(s.adminToken))
	admin.POST("/setup", s.setupGame)
	admin.POST("/start", s.startGame)
	admin.POST("/reset", s.resetGame)
	admin.POST("/portal", s.setPortalLevel)
	admin.POST("/players", s.createPlayer)
	admin.DELETE("/players/:id", s.deletePlayer)
	admin.DELETE("/votes/sessions/:id", s.cancelVoting)

	return router
}

// Router returns the handler for tests and embedding
func (s *Server) Router() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for running ones
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// badgeRedirect is the target of the badge QR codes. The path segment is the
// player code, so the link itself also works as a login code.
func (s *Server) badgeRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/?code="+url.QueryEscape(c.Param("id")))
}
