package voting

import (
	"context"
	"errors"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Collection is the document collection holding voting sessions
const Collection = "voting_sessions"

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("voting session not found")

// Config holds configuration for the voting repository
type Config struct {
	Store document.Repository
}

type repository struct {
	store document.Repository
}

// New creates a voting repository on top of the document store
func New(cfg *Config) (*repository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}
	return &repository{store: cfg.Store}, nil
}

func mapErr(err error) error {
	if errors.Is(err, document.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

// SaveSession creates or overwrites a session
func (r *repository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil || input.Session.ID == "" {
		return errors.New("input and session ID cannot be empty")
	}
	return r.store.Set(ctx, &document.SetInput{
		Collection: Collection,
		ID:         input.Session.ID,
		Data:       input.Session,
	})
}

// GetSession retrieves a session by ID
func (r *repository) GetSession(ctx context.Context, input *GetSessionInput) (*models.VotingSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}
	v, err := document.GetAs[models.VotingSession](ctx, r.store, Collection, input.SessionID)
	if err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

// ListSessions retrieves sessions ordered by start time
func (r *repository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	list := &document.ListInput{Collection: Collection, OrderBy: "startedAt"}
	if input != nil && input.Status != "" {
		list.Filters = []document.Filter{{Path: "status", Value: string(input.Status)}}
	}
	sessions, err := document.ListAs[models.VotingSession](ctx, r.store, list)
	if err != nil {
		return nil, err
	}
	return &ListSessionsOutput{Sessions: sessions}, nil
}

// MutateSession runs a read-modify-write against one session
func (r *repository) MutateSession(ctx context.Context, input *MutateSessionInput) (*models.VotingSession, error) {
	if input == nil || input.SessionID == "" || input.Mutate == nil {
		return nil, errors.New("input, session ID and mutate func cannot be empty")
	}
	v, err := document.MutateAs(ctx, r.store, Collection, input.SessionID, input.Mutate)
	if err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

// DeleteAllSessions clears every session
func (r *repository) DeleteAllSessions(ctx context.Context) error {
	return r.store.DeleteCollection(ctx, &document.DeleteCollectionInput{Collection: Collection})
}
