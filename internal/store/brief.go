package store

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Brief interface {
	Get(ctx context.Context, projectID uuid.UUID) (*model.Brief, error)
	Upsert(ctx context.Context, brief model.Brief) (*model.Brief, error)
}

type BriefStore struct {
	db *gorm.DB
}

// Make sure we conform to Brief interface
var _ Brief = (*BriefStore)(nil)

func NewBriefStore(db *gorm.DB) Brief {
	return &BriefStore{db: db}
}

func (b *BriefStore) Get(ctx context.Context, projectID uuid.UUID) (*model.Brief, error) {
	brief := model.Brief{}
	result := getDB(ctx, b.db).Where("project_id = ?", projectID).First(&brief)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &brief, nil
}

// Upsert keeps one brief per project. A second save for the same project
// replaces the payload and bumps the version instead of inserting a new row.
func (b *BriefStore) Upsert(ctx context.Context, brief model.Brief) (*model.Brief, error) {
	result := getDB(ctx, b.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"payload":        brief.Payload,
			"is_valid":       brief.IsValid,
			"missing_fields": brief.MissingFields,
			"version":        gorm.Expr("briefs.version + 1"),
			"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&brief)
	if result.Error != nil {
		return nil, result.Error
	}
	return b.Get(ctx, brief.ProjectID)
}
