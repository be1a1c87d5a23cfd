package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// LinkCollection holds one document per Discord user that has logged in
const LinkCollection = "discord_links"

// ErrNotLinked is returned for Discord users that have not logged in yet
var ErrNotLinked = errors.New("discord user is not linked to a player")

// LinkStore remembers which player a Discord user logged in as
type LinkStore interface {
	Link(ctx context.Context, discordUserID, playerID string) error
	PlayerFor(ctx context.Context, discordUserID string) (string, error)
}

type link struct {
	DiscordUserID string    `json:"discordUserId"`
	PlayerID      string    `json:"playerId"`
	LinkedAt      time.Time `json:"linkedAt"`
}

type documentLinks struct {
	store document.Repository
	now   func() time.Time
}

// NewLinkStore keeps links in the document store
func NewLinkStore(store document.Repository) (*documentLinks, error) {
	if store == nil {
		return nil, errors.New("document store cannot be nil")
	}
	return &documentLinks{store: store, now: time.Now}, nil
}

// Link overwrites any earlier link of the Discord user
func (l *documentLinks) Link(ctx context.Context, discordUserID, playerID string) error {
	if discordUserID == "" || playerID == "" {
		return errors.New("discord user and player ID cannot be empty")
	}
	return l.store.Set(ctx, &document.SetInput{
		Collection: LinkCollection,
		ID:         discordUserID,
		Data: &link{
			DiscordUserID: discordUserID,
			PlayerID:      playerID,
			LinkedAt:      l.now().UTC(),
		},
	})
}

func (l *documentLinks) PlayerFor(ctx context.Context, discordUserID string) (string, error) {
	found, err := document.GetAs[link](ctx, l.store, LinkCollection, discordUserID)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return "", ErrNotLinked
		}
		return "", fmt.Errorf("failed to get discord link: %w", err)
	}
	return found.PlayerID, nil
}
