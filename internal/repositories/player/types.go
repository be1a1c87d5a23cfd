package player

import (
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

type SavePlayerInput struct {
	Player *models.Player
}

type GetPlayerInput struct {
	PlayerID string
}

type ListPlayersInput struct {
	// ActiveOnly skips eliminated players
	ActiveOnly bool

	// Role restricts the result to one side when set
	Role models.PlayerRole
}

type ListPlayersOutput struct {
	Players []*models.Player
}

type MutatePlayerInput struct {
	PlayerID string

	// Mutate may run more than once if the player changes concurrently
	Mutate func(p *models.Player) error
}

type UpdatePlayerInput struct {
	PlayerID string
	Ops      []document.Op
}

type DeletePlayerInput struct {
	PlayerID string
}

type WatchPlayersInput struct {
	// PlayerID watches a single player; empty watches all of them
	PlayerID string
	Handler  func(*document.Change)
}
