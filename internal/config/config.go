// Package config loads process settings from the environment and game
// rosters from YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment
type Config struct {
	RedisAddr     string `env:"PORTAL_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"PORTAL_REDIS_PASSWORD"`
	RedisDB       int    `env:"PORTAL_REDIS_DB" envDefault:"0"`

	HTTPAddr string `env:"PORTAL_HTTP_ADDR" envDefault:":8080"`

	// AdminToken guards /api/admin; the admin routes are closed when empty
	AdminToken string `env:"PORTAL_ADMIN_TOKEN"`

	// Discord is only started when a token is set
	DiscordToken   string `env:"PORTAL_DISCORD_TOKEN"`
	DiscordAppID   string `env:"PORTAL_DISCORD_APP_ID"`
	DiscordGuildID string `env:"PORTAL_DISCORD_GUILD_ID"`

	// DiscordFeedChannelID receives public game events when set
	DiscordFeedChannelID string `env:"PORTAL_DISCORD_FEED_CHANNEL_ID"`

	InitialPortalLevel int           `env:"PORTAL_INITIAL_PORTAL_LEVEL" envDefault:"10"`
	VotingDuration     time.Duration `env:"PORTAL_VOTING_DURATION" envDefault:"5m"`
	SweepInterval      time.Duration `env:"PORTAL_SWEEP_INTERVAL" envDefault:"15s"`
	MeetingThresholds  []int         `env:"PORTAL_MEETING_THRESHOLDS" envDefault:"7,14,20" envSeparator:","`
	TrapsPerAltered    int           `env:"PORTAL_TRAPS_PER_ALTERED" envDefault:"2"`

	// BaseURL prefixes the links printed on badge QR codes
	BaseURL string `env:"PORTAL_BASE_URL" envDefault:"http://localhost:8080"`
}

// Load reads an optional dotenv file and then parses the environment.
// Variables already set in the environment win over the file.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	if c.InitialPortalLevel < 0 || c.InitialPortalLevel > 20 {
		return fmt.Errorf("PORTAL_INITIAL_PORTAL_LEVEL must be within 0-20, got %d", c.InitialPortalLevel)
	}
	if c.VotingDuration <= 0 {
		return errors.New("PORTAL_VOTING_DURATION must be positive")
	}
	if c.TrapsPerAltered < 0 {
		return errors.New("PORTAL_TRAPS_PER_ALTERED cannot be negative")
	}
	prev := 0
	for _, t := range c.MeetingThresholds {
		if t <= prev {
			return fmt.Errorf("PORTAL_MEETING_THRESHOLDS must be positive and increasing, got %v", c.MeetingThresholds)
		}
		prev = t
	}
	return nil
}
