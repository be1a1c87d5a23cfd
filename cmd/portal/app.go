package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/portal/internal/common/clock"
	"github.com/KirkDiggler/portal/internal/common/uuid"
	"github.com/KirkDiggler/portal/internal/config"
	"github.com/KirkDiggler/portal/internal/dice"
	"github.com/KirkDiggler/portal/internal/repositories/document"
	eventRepo "github.com/KirkDiggler/portal/internal/repositories/event"
	gameStateRepo "github.com/KirkDiggler/portal/internal/repositories/game_state"
	missionRepo "github.com/KirkDiggler/portal/internal/repositories/mission"
	playerRepo "github.com/KirkDiggler/portal/internal/repositories/player"
	votingRepo "github.com/KirkDiggler/portal/internal/repositories/voting"
	"github.com/KirkDiggler/portal/internal/services/endgame"
	"github.com/KirkDiggler/portal/internal/services/events"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/KirkDiggler/portal/internal/services/messaging"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/suspicion"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// app holds everything a command needs, wired from one config
type app struct {
	cfg   *config.Config
	redis *redis.Client
	store document.Repository
	game  game.Service
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	a := &app{cfg: cfg, redis: redisClient}
	if err := a.wire(); err != nil {
		redisClient.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire() error {
	store, err := document.NewRedis(&document.Config{RedisClient: a.redis})
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	a.store = store

	players, err := playerRepo.New(&playerRepo.Config{Store: store})
	if err != nil {
		return fmt.Errorf("failed to create player repository: %w", err)
	}
	missions, err := missionRepo.New(&missionRepo.Config{Store: store})
	if err != nil {
		return fmt.Errorf("failed to create mission repository: %w", err)
	}
	states, err := gameStateRepo.New(&gameStateRepo.Config{Store: store})
	if err != nil {
		return fmt.Errorf("failed to create game state repository: %w", err)
	}
	votes, err := votingRepo.New(&votingRepo.Config{Store: store})
	if err != nil {
		return fmt.Errorf("failed to create voting repository: %w", err)
	}
	eventStore, err := eventRepo.New(&eventRepo.Config{Store: store})
	if err != nil {
		return fmt.Errorf("failed to create event repository: %w", err)
	}

	clk := clock.New()
	ids := uuid.New()
	roller := dice.New(&dice.Config{})

	feed, err := events.New(&events.Config{EventRepo: eventStore, Clock: clk, UUIDGenerator: ids})
	if err != nil {
		return fmt.Errorf("failed to create event service: %w", err)
	}
	msgs, err := messaging.NewService(&messaging.ServiceConfig{DiceRoller: roller})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}
	ender, err := endgame.New(&endgame.Config{
		PlayerRepo:    players,
		GameStateRepo: states,
		VotingRepo:    votes,
		Events:        feed,
		Clock:         clk,
	})
	if err != nil {
		return fmt.Errorf("failed to create end game service: %w", err)
	}
	traps, err := trap.New(&trap.Config{
		PlayerRepo:    players,
		MissionRepo:   missions,
		GameStateRepo: states,
		Events:        feed,
		Messaging:     msgs,
		EndGame:       ender,
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		return fmt.Errorf("failed to create trap service: %w", err)
	}
	meetings, err := voting.New(&voting.Config{
		PlayerRepo:     players,
		VotingRepo:     votes,
		GameStateRepo:  states,
		Events:         feed,
		EndGame:        ender,
		DiceRoller:     roller,
		Clock:          clk,
		UUIDGenerator:  ids,
		VotingDuration: a.cfg.VotingDuration,
	})
	if err != nil {
		return fmt.Errorf("failed to create voting service: %w", err)
	}
	missionSvc, err := mission.New(&mission.Config{
		PlayerRepo:    players,
		MissionRepo:   missions,
		GameStateRepo: states,
		Events:        feed,
		Messaging:     msgs,
		Traps:         traps,
		EndGame:       ender,
		Meetings:      meetings,
		DiceRoller:    roller,
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		return fmt.Errorf("failed to create mission service: %w", err)
	}
	suspects, err := suspicion.New(&suspicion.Config{PlayerRepo: players, Events: feed})
	if err != nil {
		return fmt.Errorf("failed to create suspicion service: %w", err)
	}

	engine, err := game.New(&game.Config{
		PlayerRepo:         players,
		MissionRepo:        missions,
		GameStateRepo:      states,
		VotingRepo:         votes,
		Events:             feed,
		Missions:           missionSvc,
		Traps:              traps,
		Voting:             meetings,
		Suspicion:          suspects,
		EndGame:            ender,
		Clock:              clk,
		InitialPortalLevel: a.cfg.InitialPortalLevel,
		MeetingThresholds:  a.cfg.MeetingThresholds,
		TrapUses:           a.cfg.TrapsPerAltered,
		SweepInterval:      a.cfg.SweepInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create game engine: %w", err)
	}
	a.game = engine
	return nil
}

func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
}

// withEngine runs fn with the command loop started
func (a *app) withEngine(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := a.game.Start(ctx); err != nil {
		return fmt.Errorf("failed to start game engine: %w", err)
	}
	defer a.game.Stop()
	return fn(ctx)
}

// loadApp reads the config named by the persistent flags and wires the app
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(ctx, cfg)
}
