package voting

import (
	"context"

	"github.com/KirkDiggler/portal/internal/models"
)

// Repository defines the interface for voting session persistence
type Repository interface {
	// SaveSession creates or overwrites a session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.VotingSession, error)

	// ListSessions retrieves sessions oldest first, optionally by status
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// MutateSession runs a read-modify-write against one session
	MutateSession(ctx context.Context, input *MutateSessionInput) (*models.VotingSession, error)

	// DeleteAllSessions clears every session
	DeleteAllSessions(ctx context.Context) error
}
