package store

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Narrative interface {
	Get(ctx context.Context, projectID uuid.UUID) (*model.Narrative, error)
}

type NarrativeStore struct {
	db *gorm.DB
}

// Make sure we conform to Narrative interface
var _ Narrative = (*NarrativeStore)(nil)

func NewNarrativeStore(db *gorm.DB) Narrative {
	return &NarrativeStore{db: db}
}

func (n *NarrativeStore) Get(ctx context.Context, projectID uuid.UUID) (*model.Narrative, error) {
	narrative := model.Narrative{}
	result := getDB(ctx, n.db).Where("project_id = ?", projectID).Order("created_at DESC").First(&narrative)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &narrative, nil
}
