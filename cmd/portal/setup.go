package main

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/portal/internal/config"
	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/spf13/cobra"
)

var (
	rosterPath     string
	assignMissions bool
	reassign       bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Replace the current game with a new one from a roster file",
	Long: `Wipes every player, mission, vote and event and creates a waiting
game from a YAML roster:

  players:
    - id: a1
      name: Alex
      role: altered
    - id: h1
      name: Hana
      role: human`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progress but keep the roster",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a waiting game",
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func init() {
	setupCmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "YAML roster file")
	setupCmd.Flags().BoolVar(&assignMissions, "assign", true, "hand out mission queues right away")
	_ = setupCmd.MarkFlagRequired("roster")

	resetCmd.Flags().BoolVar(&reassign, "reassign", false, "hand out fresh mission queues after the reset")

	rootCmd.AddCommand(setupCmd, resetCmd, startCmd)
}

func rosterSpecs(roster *config.Roster) []game.PlayerSpec {
	specs := make([]game.PlayerSpec, 0, len(roster.Players))
	for _, p := range roster.Players {
		specs = append(specs, game.PlayerSpec{
			ID:   p.ID,
			Name: p.Name,
			Role: models.PlayerRole(p.Role),
		})
	}
	return specs
}

func runSetup(cmd *cobra.Command, args []string) error {
	roster, err := config.LoadRoster(rosterPath)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return a.withEngine(cmd.Context(), func(ctx context.Context) error {
		out, err := a.game.SetupGame(ctx, &game.SetupGameInput{
			Players:        rosterSpecs(roster),
			AssignMissions: assignMissions,
		})
		if err != nil {
			return fmt.Errorf("failed to set up game: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Created a game with %d players; the portal stands at %d.\n",
			len(out.Players), out.GameState.PortalLevel)
		if assignMissions {
			fmt.Fprintf(w, "Assigned %d missions.\n", out.MissionsAssigned)
		}
		return nil
	})
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return a.withEngine(cmd.Context(), func(ctx context.Context) error {
		out, err := a.game.ResetGame(ctx, &game.ResetGameInput{Reassign: reassign})
		if err != nil {
			return fmt.Errorf("failed to reset game: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Message)
		return nil
	})
}

func runStart(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return a.withEngine(cmd.Context(), func(ctx context.Context) error {
		state, err := a.game.StartGame(ctx)
		if err != nil {
			return fmt.Errorf("failed to start game: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "The game has begun! The portal stands at %d.\n", state.PortalLevel)
		return nil
	})
}
