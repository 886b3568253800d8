package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

func (b *BaseQuerier) ApplyTo(tx *gorm.DB) *gorm.DB {
	for _, fn := range b.QueryFn {
		tx = fn(tx)
	}
	return tx
}

type ProjectQueryFilter BaseQuerier

func NewProjectQueryFilter() *ProjectQueryFilter {
	return &ProjectQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *ProjectQueryFilter) ByUserID(userID string) *ProjectQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	})
	return qf
}

type OutputQueryFilter BaseQuerier

func NewOutputQueryFilter() *OutputQueryFilter {
	return &OutputQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *OutputQueryFilter) ByProjectID(id uuid.UUID) *OutputQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("project_id = ?", id)
	})
	return qf
}

func (qf *OutputQueryFilter) ByAvatarID(id uuid.UUID) *OutputQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("avatar_id = ?", id)
	})
	return qf
}

func (qf *OutputQueryFilter) ByJobID(id uuid.UUID) *OutputQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_id = ?", id)
	})
	return qf
}

func (qf *OutputQueryFilter) ByJobIDs(ids []uuid.UUID) *OutputQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_id IN ?", ids)
	})
	return qf
}

func (qf *OutputQueryFilter) ByLevel(level int) *OutputQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("level = ?", level)
	})
	return qf
}
