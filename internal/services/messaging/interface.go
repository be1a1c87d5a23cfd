package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRiddle returns a riddle and instruction for a mission tier
	GetRiddle(ctx context.Context, input *GetRiddleInput) (*GetRiddleOutput, error)

	// GetTrapHint returns a clue about a human's mission target for an inverse trap
	GetTrapHint(ctx context.Context, input *GetTrapHintInput) (*GetTrapHintOutput, error)

	// GetMissionCompletedMessage returns the public announcement for a completed mission
	GetMissionCompletedMessage(ctx context.Context, input *GetMissionCompletedMessageInput) (*GetMissionCompletedMessageOutput, error)
}
