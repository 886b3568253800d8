package store

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Avatar interface {
	List(ctx context.Context, projectID uuid.UUID) (model.AvatarList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Avatar, error)
}

type AvatarStore struct {
	db *gorm.DB
}

// Make sure we conform to Avatar interface
var _ Avatar = (*AvatarStore)(nil)

func NewAvatarStore(db *gorm.DB) Avatar {
	return &AvatarStore{db: db}
}

func (a *AvatarStore) List(ctx context.Context, projectID uuid.UUID) (model.AvatarList, error) {
	var avatars model.AvatarList
	result := getDB(ctx, a.db).Where("project_id = ?", projectID).Order("slot ASC").Find(&avatars)
	if result.Error != nil {
		return nil, result.Error
	}
	return avatars, nil
}

func (a *AvatarStore) Get(ctx context.Context, id uuid.UUID) (*model.Avatar, error) {
	avatar := model.Avatar{ID: id}
	result := getDB(ctx, a.db).First(&avatar)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &avatar, nil
}
