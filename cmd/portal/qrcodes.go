package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

const qrSize = 512

var qrOutDir string

var qrcodesCmd = &cobra.Command{
	Use:   "qrcodes",
	Short: "Write one badge QR code PNG per player",
	Long: `Each code links to PORTAL_BASE_URL/p/<player id>. Scanning a badge
with the game, or typing its link, resolves back to the player.`,
	Args: cobra.NoArgs,
	RunE: runQRCodes,
}

func init() {
	qrcodesCmd.Flags().StringVarP(&qrOutDir, "out", "o", "badges", "directory for the PNG files")
	rootCmd.AddCommand(qrcodesCmd)
}

// badgeURL is the payload printed on a badge
func badgeURL(baseURL, playerID string) string {
	return strings.TrimRight(baseURL, "/") + "/p/" + url.PathEscape(playerID)
}

// badgeFile keeps player IDs from escaping the output directory
func badgeFile(playerID string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, playerID)
	return safe + ".png"
}

func writeQRCodes(dir, baseURL string, players []*models.Player) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	written := make([]string, 0, len(players))
	for _, p := range players {
		path := filepath.Join(dir, badgeFile(p.ID))
		if err := qrcode.WriteFile(badgeURL(baseURL, p.ID), qrcode.Medium, qrSize, path); err != nil {
			return written, fmt.Errorf("failed to write badge for %s: %w", p.ID, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func runQRCodes(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.game.ListPlayers(cmd.Context(), &game.ListPlayersInput{})
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	if len(out.Players) == 0 {
		return errors.New("there are no players; run setup first")
	}

	written, err := writeQRCodes(qrOutDir, a.cfg.BaseURL, out.Players)
	if err != nil {
		return err
	}
	for i, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out.Players[i].Name, path)
	}
	return nil
}
