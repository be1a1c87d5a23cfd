package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/portal/internal/dice"
)

type riddle struct {
	text        string
	instruction string
}

var riddlesByTier = map[int][]riddle{
	1: {
		{text: "Seek the one who wears blue", instruction: "Find the person dressed in blue"},
		{text: "Find the one who smiles the most", instruction: "Look for the smiling person"},
		{text: "Seek the one whose voice carries across the room", instruction: "Find the loudest person"},
	},
	2: {
		{text: "The one whose first name starts with the fourth letter of the alphabet", instruction: "First name starts with D"},
		{text: "Seek the one with the longest hair", instruction: "Find long hair"},
	},
	3: {
		{text: "The one who keeps a secret", instruction: "Look for the mysterious one"},
		{text: "Find the one who watches in silence", instruction: "The quiet one"},
	},
}

var (
	hintColours    = []string{"red", "blue", "black", "white"}
	hintHeights    = []string{"tall", "short", "of average height"}
	hintHair       = []string{"short", "long", "shoulder-length"}
	hintDemeanours = []string{"smiles a lot", "is often serious", "talks loudly"}
)

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (*service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if config.DiceRoller == nil {
		return nil, errors.New("dice roller cannot be nil")
	}

	return &service{
		roller: config.DiceRoller,
	}, nil
}

func (s *service) pick(options []string) string {
	return options[dice.Pick(s.roller, len(options))]
}

// GetRiddle returns a riddle from the tier's pool
func (s *service) GetRiddle(ctx context.Context, input *GetRiddleInput) (*GetRiddleOutput, error) {
	tier := 1
	if input != nil {
		tier = input.Tier
	}
	pool, ok := riddlesByTier[tier]
	if !ok {
		pool = riddlesByTier[1]
	}

	selected := pool[dice.Pick(s.roller, len(pool))]

	return &GetRiddleOutput{
		Riddle:      selected.text,
		Instruction: selected.instruction,
	}, nil
}

// GetTrapHint returns one clue about the target of the human's mission
func (s *service) GetTrapHint(ctx context.Context, input *GetTrapHintInput) (*GetTrapHintOutput, error) {
	if input == nil || strings.TrimSpace(input.TargetName) == "" {
		return nil, errors.New("target name cannot be empty")
	}

	initial, _ := utf8.DecodeRuneInString(strings.TrimSpace(input.TargetName))

	hints := []func() string{
		func() string { return fmt.Sprintf("Their target often wears %s", s.pick(hintColours)) },
		func() string { return fmt.Sprintf("Their target's first name starts with %q", strings.ToUpper(string(initial))) },
		func() string { return fmt.Sprintf("Their target is %s", s.pick(hintHeights)) },
		func() string { return fmt.Sprintf("Their target has %s hair", s.pick(hintHair)) },
		func() string { return fmt.Sprintf("Their target %s", s.pick(hintDemeanours)) },
	}

	return &GetTrapHintOutput{
		Hint: hints[dice.Pick(s.roller, len(hints))](),
	}, nil
}

// GetMissionCompletedMessage returns the public announcement for a completed mission
func (s *service) GetMissionCompletedMessage(ctx context.Context, input *GetMissionCompletedMessageInput) (*GetMissionCompletedMessageOutput, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("player name cannot be empty")
	}

	messages := []string{
		"%s found their target. The portal recedes to %d.",
		"Another fragment recovered by %s! Portal level: %d.",
		"%s completed a mission. The portal weakens (%d).",
	}

	return &GetMissionCompletedMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.PlayerName, input.PortalLevel),
	}, nil
}
