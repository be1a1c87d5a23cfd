package mission

import (
	"time"

	"github.com/KirkDiggler/portal/internal/models"
)

type SaveMissionInput struct {
	Mission *models.Mission
}

type GetMissionInput struct {
	MissionID string
}

type ListMissionsInput struct {
	AssigneeID string
}

type ListMissionsOutput struct {
	Missions []*models.Mission
}

type ResolveMissionInput struct {
	MissionID  string
	Result     models.MissionResult
	ResolvedAt time.Time
}
