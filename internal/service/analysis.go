package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/service/mappers"
	"github.com/made-to-scale/scaleops/internal/store"
)

type AnalysisService struct {
	store     store.Store
	manifests progress.ManifestSet
	tracker   *progress.Tracker
}

func NewAnalysisService(store store.Store, manifests progress.ManifestSet, tracker *progress.Tracker) *AnalysisService {
	return &AnalysisService{store: store, manifests: manifests, tracker: tracker}
}

// ListResults joins every analysis job of the project with its aggregated
// section progress.
func (s *AnalysisService) ListResults(ctx context.Context, projectID uuid.UUID) ([]api.AnalysisResult, error) {
	jobs, err := s.store.Analysis().ListJobs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []api.AnalysisResult{}, nil
	}

	jobIDs := make([]uuid.UUID, 0, len(jobs))
	for i := range jobs {
		jobIDs = append(jobIDs, jobs[i].ID)
	}
	outputs, err := s.store.Analysis().ListOutputs(ctx, store.NewOutputQueryFilter().ByJobIDs(jobIDs))
	if err != nil {
		return nil, err
	}
	rows := make([]progress.SectionRow, 0, len(outputs))
	for _, output := range outputs {
		rows = append(rows, progress.SectionRow{OwnerID: output.JobID, Section: output.Section})
	}
	snapshots := progress.Aggregate(rows, s.manifests.AnalysisJob)

	results := make([]api.AnalysisResult, 0, len(jobs))
	for i := range jobs {
		snapshot, ok := snapshots[jobs[i].ID]
		if !ok {
			snapshot = progress.SnapshotFor(nil, s.manifests.AnalysisJob)
		}
		results = append(results, mappers.AnalysisResultToApi(&jobs[i], snapshot))
	}
	return results, nil
}

// GetResult returns a single analysis job with its aggregated section
// progress. Jobs of other projects report not found.
func (s *AnalysisService) GetResult(ctx context.Context, projectID, jobID uuid.UUID) (*api.AnalysisResult, error) {
	job, err := s.store.Analysis().GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(jobID)
		}
		return nil, err
	}
	if job.ProjectID != projectID {
		return nil, NewErrJobNotFound(jobID)
	}

	outputs, err := s.store.Analysis().ListOutputs(ctx, store.NewOutputQueryFilter().ByJobID(jobID))
	if err != nil {
		return nil, err
	}
	rows := make([]progress.SectionRow, 0, len(outputs))
	for _, output := range outputs {
		rows = append(rows, progress.SectionRow{OwnerID: output.JobID, Section: output.Section})
	}

	result := mappers.AnalysisResultToApi(job, progress.SnapshotFor(rows, s.manifests.AnalysisJob))
	return &result, nil
}

// ListAvatarProgress aggregates master dossier readiness per avatar.
func (s *AnalysisService) ListAvatarProgress(ctx context.Context, projectID uuid.UUID) ([]api.AvatarProgress, error) {
	avatars, err := s.store.Avatar().List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	outputs, err := s.store.Analysis().ListMasterOutputs(ctx, store.NewOutputQueryFilter().ByProjectID(projectID))
	if err != nil {
		return nil, err
	}
	rows := make([]progress.SectionRow, 0, len(outputs))
	for _, output := range outputs {
		rows = append(rows, progress.SectionRow{OwnerID: output.AvatarID, Section: output.Section})
	}
	snapshots := progress.Aggregate(rows, s.manifests.AvatarMaster)

	result := make([]api.AvatarProgress, 0, len(avatars))
	for _, avatar := range avatars {
		snapshot, ok := snapshots[avatar.ID]
		if !ok {
			snapshot = progress.SnapshotFor(nil, s.manifests.AvatarMaster)
		}
		result = append(result, api.AvatarProgress{
			AvatarID: avatar.ID,
			Slot:     avatar.Slot,
			Progress: mappers.SnapshotToApi(snapshot),
		})
	}
	return result, nil
}

// GetMasterOutputs returns the dossier sections of one avatar, newest row per
// section name.
func (s *AnalysisService) GetMasterOutputs(ctx context.Context, projectID, avatarID uuid.UUID) ([]api.SectionOutput, error) {
	if _, err := s.store.Avatar().Get(ctx, avatarID); err != nil {
		return nil, NewErrAvatarNotFound(avatarID)
	}

	outputs, err := s.store.Analysis().ListMasterOutputs(ctx, store.NewOutputQueryFilter().ByProjectID(projectID).ByAvatarID(avatarID))
	if err != nil {
		return nil, err
	}

	// The pipeline may rewrite a section on rerun; latest wins.
	latest := make(map[string]api.SectionOutput)
	for i := range outputs {
		section := mappers.MasterOutputToApi(&outputs[i])
		if existing, ok := latest[section.Section]; !ok || section.CreatedAt.After(existing.CreatedAt) {
			latest[section.Section] = section
		}
	}

	result := make([]api.SectionOutput, 0, len(latest))
	for _, section := range latest {
		result = append(result, section)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Section < result[j].Section })
	return result, nil
}

// GetLevelOutputs returns the consciousness-level deep dive blocks for one
// avatar, optionally narrowed to one level.
func (s *AnalysisService) GetLevelOutputs(ctx context.Context, projectID, avatarID uuid.UUID, level int) ([]api.LevelOutput, error) {
	if _, err := s.store.Avatar().Get(ctx, avatarID); err != nil {
		return nil, NewErrAvatarNotFound(avatarID)
	}

	filter := store.NewOutputQueryFilter().ByProjectID(projectID).ByAvatarID(avatarID)
	if level > 0 {
		filter = filter.ByLevel(level)
	}
	outputs, err := s.store.Analysis().ListLevelOutputs(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]api.LevelOutput, 0, len(outputs))
	for i := range outputs {
		result = append(result, mappers.LevelOutputToApi(&outputs[i]))
	}
	return result, nil
}

// WatchProgress blocks until the tracker produces a fresh evaluation for the
// scope or the wait window closes, and returns the latest state. Clients use
// it as a long-poll endpoint instead of hammering the list endpoints.
func (s *AnalysisService) WatchProgress(ctx context.Context, scope progress.Scope, wait time.Duration) (*progress.Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	sub, err := s.tracker.Track(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer sub.Stop()

	select {
	case update, ok := <-sub.Updates():
		if !ok {
			return nil, ctx.Err()
		}
		if update.Err != nil {
			return nil, update.Err
		}
		return &update, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
