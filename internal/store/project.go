package store

import (
	"context"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Project interface {
	List(ctx context.Context, filter *ProjectQueryFilter) (model.ProjectList, error)
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*api.ProjectStats, error)
	Contexts(ctx context.Context, id uuid.UUID) ([]model.ProjectContext, error)
	UpsertContext(ctx context.Context, pc model.ProjectContext) (*model.ProjectContext, error)
}

type ProjectStore struct {
	db *gorm.DB
}

// Make sure we conform to Project interface
var _ Project = (*ProjectStore)(nil)

func NewProjectStore(db *gorm.DB) Project {
	return &ProjectStore{db: db}
}

func (p *ProjectStore) List(ctx context.Context, filter *ProjectQueryFilter) (model.ProjectList, error) {
	var projects model.ProjectList
	tx := p.getDB(ctx)
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	result := tx.Order("created_at DESC").Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}

func (p *ProjectStore) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	result := p.getDB(ctx).Clauses(clause.Returning{}).Create(&project)
	if result.Error != nil {
		return nil, result.Error
	}
	return &project, nil
}

func (p *ProjectStore) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project := model.Project{ID: id}
	result := p.getDB(ctx).First(&project)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &project, nil
}

func (p *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := p.getDB(ctx).Select("Brief", "Avatars", "Contexts", "Jobs", "Narrative", "Competitors", "Ads").Delete(&model.Project{ID: id})
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}
	return nil
}

// Stats counts the child rows the overview page summarizes. Counts run in
// the same transaction when one is present in the context.
func (p *ProjectStore) Stats(ctx context.Context, id uuid.UUID) (*api.ProjectStats, error) {
	tx := p.getDB(ctx)
	stats := api.ProjectStats{}

	counts := []struct {
		dst   *int64
		model any
	}{
		{&stats.Avatars, &model.Avatar{}},
		{&stats.Jobs, &model.AnalysisJob{}},
		{&stats.Competitors, &model.Competitor{}},
		{&stats.Ads, &model.AdCreation{}},
	}
	for _, c := range counts {
		if err := tx.Model(c.model).Where("project_id = ?", id).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var briefs int64
	if err := tx.Model(&model.Brief{}).Where("project_id = ?", id).Count(&briefs).Error; err != nil {
		return nil, err
	}
	stats.HasBrief = briefs > 0

	var narratives int64
	if err := tx.Model(&model.Narrative{}).Where("project_id = ?", id).Count(&narratives).Error; err != nil {
		return nil, err
	}
	stats.HasNarrative = narratives > 0

	return &stats, nil
}

func (p *ProjectStore) Contexts(ctx context.Context, id uuid.UUID) ([]model.ProjectContext, error) {
	var contexts []model.ProjectContext
	result := p.getDB(ctx).Where("project_id = ?", id).Order("kind").Find(&contexts)
	if result.Error != nil {
		return nil, result.Error
	}
	return contexts, nil
}

func (p *ProjectStore) UpsertContext(ctx context.Context, pc model.ProjectContext) (*model.ProjectContext, error) {
	result := p.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"content"}),
	}).Create(&pc)
	if result.Error != nil {
		return nil, result.Error
	}
	return &pc, nil
}

func (p *ProjectStore) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, p.db)
}
