package mission

import (
	"context"
	"errors"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/repositories/document"
)

// Collection is the document collection holding the mission log
const Collection = "missions"

// ErrMissionNotFound is returned when a mission is not found
var ErrMissionNotFound = errors.New("mission not found")

// Config holds configuration for the mission repository
type Config struct {
	Store document.Repository
}

type repository struct {
	store document.Repository
}

// New creates a mission repository on top of the document store
func New(cfg *Config) (*repository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}
	return &repository{store: cfg.Store}, nil
}

// SaveMission persists a mission
func (r *repository) SaveMission(ctx context.Context, input *SaveMissionInput) error {
	if input == nil || input.Mission == nil || input.Mission.ID == "" {
		return errors.New("input and mission ID cannot be empty")
	}
	return r.store.Set(ctx, &document.SetInput{
		Collection: Collection,
		ID:         input.Mission.ID,
		Data:       input.Mission,
	})
}

// GetMission retrieves a mission by ID
func (r *repository) GetMission(ctx context.Context, input *GetMissionInput) (*models.Mission, error) {
	if input == nil || input.MissionID == "" {
		return nil, errors.New("input and mission ID cannot be empty")
	}
	m, err := document.GetAs[models.Mission](ctx, r.store, Collection, input.MissionID)
	if errors.Is(err, document.ErrNotFound) {
		return nil, ErrMissionNotFound
	}
	return m, err
}

// ListMissions retrieves missions ordered by creation time
func (r *repository) ListMissions(ctx context.Context, input *ListMissionsInput) (*ListMissionsOutput, error) {
	list := &document.ListInput{Collection: Collection, OrderBy: "createdAt"}
	if input != nil && input.AssigneeID != "" {
		list.Filters = []document.Filter{{Path: "assigneeId", Value: input.AssigneeID}}
	}
	missions, err := document.ListAs[models.Mission](ctx, r.store, list)
	if err != nil {
		return nil, err
	}
	return &ListMissionsOutput{Missions: missions}, nil
}

// ResolveMission marks a mission completed with the given result
func (r *repository) ResolveMission(ctx context.Context, input *ResolveMissionInput) (*models.Mission, error) {
	if input == nil || input.MissionID == "" {
		return nil, errors.New("input and mission ID cannot be empty")
	}
	m, err := document.UpdateAs[models.Mission](ctx, r.store, Collection, input.MissionID,
		document.SetField("completed", true),
		document.SetField("result", string(input.Result)),
		document.SetField("completedAt", input.ResolvedAt),
	)
	if errors.Is(err, document.ErrNotFound) {
		return nil, ErrMissionNotFound
	}
	return m, err
}

// DeleteAllMissions clears the mission log
func (r *repository) DeleteAllMissions(ctx context.Context) error {
	return r.store.DeleteCollection(ctx, &document.DeleteCollectionInput{Collection: Collection})
}
