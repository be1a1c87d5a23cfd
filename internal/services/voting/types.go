package voting

import (
	"time"

	"github.com/KirkDiggler/portal/internal/models"
)

// MinVoters is the smallest table that can hold a vote
const MinVoters = 3

// DefaultVotingDuration is how long a session stays open
const DefaultVotingDuration = 5 * time.Minute

type StartVotingSessionInput struct {
	InitiatorID string
}

type StartVotingSessionOutput struct {
	Session *models.VotingSession
	Message string
}

type CheckMeetingThresholdOutput struct {
	Triggered bool

	// Session is set when a meeting was opened
	Session *models.VotingSession
}

type CastVoteInput struct {
	SessionID string
	VoterID   string
	TargetID  string
}

type CastVoteOutput struct {
	Session *models.VotingSession
	Message string

	// Finalized is set when this vote was the last one owed
	Finalized bool
	Result    *FinalizeVotingSessionOutput
}

type FinalizeVotingSessionInput struct {
	SessionID string
}

type FinalizeVotingSessionOutput struct {
	Session *models.VotingSession

	// Eliminated is nil when nobody voted
	Eliminated *models.Player
	Message    string

	GameEnded bool
	Winner    models.Team
	EndReason models.EndReason
}

type CancelVotingSessionInput struct {
	SessionID string
}

type GetVotingSessionInput struct {
	SessionID string
}

type CloseExpiredSessionsOutput struct {
	Closed []*FinalizeVotingSessionOutput
}
