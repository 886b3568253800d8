package store

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Ads interface {
	List(ctx context.Context, projectID uuid.UUID) (model.AdCreationList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.AdCreation, error)
	Create(ctx context.Context, ad model.AdCreation) (*model.AdCreation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AdsStore struct {
	db *gorm.DB
}

// Make sure we conform to Ads interface
var _ Ads = (*AdsStore)(nil)

func NewAdsStore(db *gorm.DB) Ads {
	return &AdsStore{db: db}
}

func (a *AdsStore) List(ctx context.Context, projectID uuid.UUID) (model.AdCreationList, error) {
	var ads model.AdCreationList
	result := getDB(ctx, a.db).Where("project_id = ?", projectID).Order("created_at DESC").Find(&ads)
	if result.Error != nil {
		return nil, result.Error
	}
	return ads, nil
}

func (a *AdsStore) Get(ctx context.Context, id uuid.UUID) (*model.AdCreation, error) {
	ad := model.AdCreation{ID: id}
	result := getDB(ctx, a.db).First(&ad)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &ad, nil
}

func (a *AdsStore) Create(ctx context.Context, ad model.AdCreation) (*model.AdCreation, error) {
	result := getDB(ctx, a.db).Clauses(clause.Returning{}).Create(&ad)
	if result.Error != nil {
		return nil, result.Error
	}
	return &ad, nil
}

func (a *AdsStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := getDB(ctx, a.db).Delete(&model.AdCreation{ID: id})
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}
	return nil
}
