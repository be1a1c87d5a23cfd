package voting

import (
	"github.com/KirkDiggler/portal/internal/models"
)

type SaveSessionInput struct {
	Session *models.VotingSession
}

type GetSessionInput struct {
	SessionID string
}

type ListSessionsInput struct {
	Status models.VotingStatus
}

type ListSessionsOutput struct {
	Sessions []*models.VotingSession
}

type MutateSessionInput struct {
	SessionID string
	Mutate    func(v *models.VotingSession) error
}
