package store

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Analysis interface {
	ListJobs(ctx context.Context, projectID uuid.UUID) (model.AnalysisJobList, error)
	GetJob(ctx context.Context, id uuid.UUID) (*model.AnalysisJob, error)
	ListOutputs(ctx context.Context, filter *OutputQueryFilter) ([]model.AvatarOutput, error)
	ListMasterOutputs(ctx context.Context, filter *OutputQueryFilter) ([]model.AvatarMasterOutput, error)
	ListLevelOutputs(ctx context.Context, filter *OutputQueryFilter) ([]model.AvatarLevelOutput, error)
}

type AnalysisStore struct {
	db *gorm.DB
}

// Make sure we conform to Analysis interface
var _ Analysis = (*AnalysisStore)(nil)

func NewAnalysisStore(db *gorm.DB) Analysis {
	return &AnalysisStore{db: db}
}

func (a *AnalysisStore) ListJobs(ctx context.Context, projectID uuid.UUID) (model.AnalysisJobList, error) {
	var jobs model.AnalysisJobList
	result := getDB(ctx, a.db).Where("project_id = ?", projectID).Order("created_at DESC").Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (a *AnalysisStore) GetJob(ctx context.Context, id uuid.UUID) (*model.AnalysisJob, error) {
	job := model.AnalysisJob{ID: id}
	result := getDB(ctx, a.db).First(&job)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

func (a *AnalysisStore) ListOutputs(ctx context.Context, filter *OutputQueryFilter) ([]model.AvatarOutput, error) {
	var outputs []model.AvatarOutput
	tx := getDB(ctx, a.db)
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	result := tx.Order("created_at ASC").Find(&outputs)
	if result.Error != nil {
		return nil, result.Error
	}
	return outputs, nil
}

func (a *AnalysisStore) ListMasterOutputs(ctx context.Context, filter *OutputQueryFilter) ([]model.AvatarMasterOutput, error) {
	var outputs []model.AvatarMasterOutput
	tx := getDB(ctx, a.db)
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	result := tx.Order("created_at ASC").Find(&outputs)
	if result.Error != nil {
		return nil, result.Error
	}
	return outputs, nil
}

func (a *AnalysisStore) ListLevelOutputs(ctx context.Context, filter *OutputQueryFilter) ([]model.AvatarLevelOutput, error) {
	var outputs []model.AvatarLevelOutput
	tx := getDB(ctx, a.db)
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	result := tx.Order("level ASC, block ASC, created_at ASC").Find(&outputs)
	if result.Error != nil {
		return nil, result.Error
	}
	return outputs, nil
}
