package mission

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
)

// Repository defines the interface for the mission log
type Repository interface {
	// SaveMission persists a mission
	SaveMission(ctx context.Context, input *SaveMissionInput) error

	// GetMission retrieves a mission by ID
	GetMission(ctx context.Context, input *GetMissionInput) (*models.Mission, error)

	// ListMissions retrieves missions, optionally for one assignee
	ListMissions(ctx context.Context, input *ListMissionsInput) (*ListMissionsOutput, error)

	// ResolveMission records the outcome of a mission
	ResolveMission(ctx context.Context, input *ResolveMissionInput) (*models.Mission, error)

	// DeleteAllMissions clears the mission log
	DeleteAllMissions(ctx context.Context) error
}
