package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/made-to-scale/scaleops/internal/store/model"
)

var ErrRecordNotFound = errors.New("record not found")

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Project() Project
	Brief() Brief
	Avatar() Avatar
	Analysis() Analysis
	Narrative() Narrative
	Competitor() Competitor
	Ads() Ads
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db         *gorm.DB
	project    Project
	brief      Brief
	avatar     Avatar
	analysis   Analysis
	narrative  Narrative
	competitor Competitor
	ads        Ads
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:         db,
		project:    NewProjectStore(db),
		brief:      NewBriefStore(db),
		avatar:     NewAvatarStore(db),
		analysis:   NewAnalysisStore(db),
		narrative:  NewNarrativeStore(db),
		competitor: NewCompetitorStore(db),
		ads:        NewAdsStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Project() Project {
	return s.project
}

func (s *DataStore) Brief() Brief {
	return s.brief
}

func (s *DataStore) Avatar() Avatar {
	return s.avatar
}

func (s *DataStore) Analysis() Analysis {
	return s.analysis
}

func (s *DataStore) Narrative() Narrative {
	return s.narrative
}

func (s *DataStore) Competitor() Competitor {
	return s.competitor
}

func (s *DataStore) Ads() Ads {
	return s.ads
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Project{},
		&model.ProjectContext{},
		&model.Brief{},
		&model.Avatar{},
		&model.AnalysisJob{},
		&model.AvatarOutput{},
		&model.AvatarMasterOutput{},
		&model.AvatarLevelOutput{},
		&model.Narrative{},
		&model.Competitor{},
		&model.CompetitorStrategy{},
		&model.CompetitorAd{},
		&model.AdCreation{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// getDB prefers the transaction bound to the context when one exists.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
