package store

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Competitor interface {
	List(ctx context.Context, projectID uuid.UUID) (model.CompetitorList, error)
	LatestStrategy(ctx context.Context, projectID uuid.UUID) (*model.CompetitorStrategy, error)
	ListAds(ctx context.Context, projectID uuid.UUID) ([]model.CompetitorAd, error)
}

type CompetitorStore struct {
	db *gorm.DB
}

// Make sure we conform to Competitor interface
var _ Competitor = (*CompetitorStore)(nil)

func NewCompetitorStore(db *gorm.DB) Competitor {
	return &CompetitorStore{db: db}
}

func (c *CompetitorStore) List(ctx context.Context, projectID uuid.UUID) (model.CompetitorList, error) {
	var competitors model.CompetitorList
	result := getDB(ctx, c.db).Where("project_id = ?", projectID).Order("nombre ASC").Find(&competitors)
	if result.Error != nil {
		return nil, result.Error
	}
	return competitors, nil
}

// LatestStrategy returns the newest consolidated analysis row. The pipeline
// appends a fresh row on every rerun, so only created_at decides the winner.
func (c *CompetitorStore) LatestStrategy(ctx context.Context, projectID uuid.UUID) (*model.CompetitorStrategy, error) {
	strategy := model.CompetitorStrategy{}
	result := getDB(ctx, c.db).Where("project_id = ?", projectID).Order("created_at DESC").First(&strategy)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &strategy, nil
}

func (c *CompetitorStore) ListAds(ctx context.Context, projectID uuid.UUID) ([]model.CompetitorAd, error) {
	var ads []model.CompetitorAd
	result := getDB(ctx, c.db).Where("project_id = ?", projectID).Order("created_at DESC").Find(&ads)
	if result.Error != nil {
		return nil, result.Error
	}
	return ads, nil
}
