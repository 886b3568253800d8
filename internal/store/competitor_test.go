package store_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

var _ = Describe("competitor store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM competitor_ads_tactical;")
		gormdb.Exec("DELETE FROM competitor_strategies;")
		gormdb.Exec("DELETE FROM competitors_strategic;")
		gormdb.Exec("DELETE FROM ads_creation;")
		gormdb.Exec("DELETE FROM projects;")
	})

	Context("list", func() {
		It("orders competitors by name", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Competitor{ID: uuid.New(), ProjectID: projectID, Nombre: "zeta"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Competitor{ID: uuid.New(), ProjectID: projectID, Nombre: "acme"}).Error).To(BeNil())

			competitors, err := s.Competitor().List(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(competitors).To(HaveLen(2))
			Expect(competitors[0].Nombre).To(Equal("acme"))
		})
	})

	Context("latest strategy", func() {
		It("returns the newest row", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			now := time.Now()
			Expect(gormdb.Create(&model.CompetitorStrategy{ID: uuid.New(), ProjectID: projectID, AnalisisFinalIA: []byte(`"old"`), CreatedAt: now.Add(-time.Hour)}).Error).To(BeNil())
			Expect(gormdb.Create(&model.CompetitorStrategy{ID: uuid.New(), ProjectID: projectID, AnalisisFinalIA: []byte(`"new"`), CreatedAt: now}).Error).To(BeNil())

			strategy, err := s.Competitor().LatestStrategy(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(string(strategy.AnalisisFinalIA)).To(Equal(`"new"`))
		})

		It("returns ErrRecordNotFound without a strategy", func() {
			_, err := s.Competitor().LatestStrategy(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})

var _ = Describe("ads store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM ads_creation;")
		gormdb.Exec("DELETE FROM projects;")
	})

	It("creates and lists generated ads", func() {
		projectID := uuid.New()
		Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

		ad, err := s.Ads().Create(context.TODO(), model.AdCreation{
			ID:          uuid.New(),
			ProjectID:   projectID,
			AvatarID:    uuid.New(),
			Format:      "image",
			FunnelStage: "TOFU",
			Angle:       "dolor principal",
			Status:      model.JobStatusQueued,
		})
		Expect(err).To(BeNil())
		Expect(ad.Status).To(Equal(model.JobStatusQueued))

		ads, err := s.Ads().List(context.TODO(), projectID)
		Expect(err).To(BeNil())
		Expect(ads).To(HaveLen(1))
	})

	It("deletes an ad", func() {
		projectID := uuid.New()
		adID := uuid.New()
		Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
		Expect(gormdb.Create(&model.AdCreation{ID: adID, ProjectID: projectID, AvatarID: uuid.New(), Format: "image", FunnelStage: "TOFU", Status: model.JobStatusQueued}).Error).To(BeNil())

		Expect(s.Ads().Delete(context.TODO(), adID)).To(Succeed())

		_, err := s.Ads().Get(context.TODO(), adID)
		Expect(err).To(MatchError(store.ErrRecordNotFound))
	})
})
