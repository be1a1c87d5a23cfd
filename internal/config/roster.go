package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Roster is the list of players for one game
type Roster struct {
	Players []RosterPlayer `yaml:"players"`
}

// RosterPlayer is one badge in the roster file
type RosterPlayer struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// LoadRoster reads a roster YAML file
func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer f.Close()

	roster, err := DecodeRoster(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode roster %s: %w", path, err)
	}
	return roster, nil
}

// DecodeRoster parses a roster document. Unknown keys are rejected.
func DecodeRoster(r io.Reader) (*Roster, error) {
	var roster Roster
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&roster); err != nil {
		if err == io.EOF {
			return &Roster{}, nil
		}
		return nil, err
	}
	return &roster, nil
}
