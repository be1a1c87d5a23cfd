package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/portal/internal/handlers/api"
	"github.com/KirkDiggler/portal/internal/handlers/discord"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game engine with the HTTP API and the optional Discord bot",
	Long: `Starts the game engine and serves the HTTP API and websocket feed.
The Discord bot is started as well when PORTAL_DISCORD_TOKEN is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.game.Start(ctx); err != nil {
		return fmt.Errorf("failed to start game engine: %w", err)
	}
	defer a.game.Stop()

	server, err := api.New(&api.Config{
		GameService: a.game,
		Addr:        a.cfg.HTTPAddr,
		AdminToken:  a.cfg.AdminToken,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}
	if a.cfg.AdminToken == "" {
		log.Println("PORTAL_ADMIN_TOKEN is not set; admin routes are disabled")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	var bot *discord.Bot
	if a.cfg.DiscordToken != "" {
		bot, err = startBot(ctx, a)
		if err != nil {
			shutdownServer(server)
			return err
		}
	} else {
		log.Println("PORTAL_DISCORD_TOKEN is not set; the Discord bot is disabled")
	}

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-serveErr:
		if err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Printf("Error stopping bot: %v", err)
		}
	}
	shutdownServer(server)

	log.Println("Portal has been shut down")
	return nil
}

func startBot(ctx context.Context, a *app) (*discord.Bot, error) {
	links, err := discord.NewLinkStore(a.store)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord link store: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:         a.cfg.DiscordToken,
		ApplicationID: a.cfg.DiscordAppID,
		GuildID:       a.cfg.DiscordGuildID,
		FeedChannelID: a.cfg.DiscordFeedChannelID,
		GameService:   a.game,
		Links:         links,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start Discord bot: %w", err)
	}
	return bot, nil
}

func shutdownServer(server *api.Server) {
	// The command context is already cancelled at this point
	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
}
