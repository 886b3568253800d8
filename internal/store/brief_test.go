package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

var _ = Describe("brief store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM briefs;")
		gormdb.Exec("DELETE FROM projects;")
	})

	Context("get", func() {
		It("returns ErrRecordNotFound when the project has no brief", func() {
			_, err := s.Brief().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("upsert", func() {
		It("creates the brief on first save", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			brief, err := s.Brief().Upsert(context.TODO(), model.Brief{
				ID:            uuid.New(),
				ProjectID:     projectID,
				Payload:       model.MakeJSONField(api.BriefPayload{NombreComercial: "Acme"}),
				IsValid:       false,
				MissingFields: model.MakeJSONField([]string{"sector"}),
			})
			Expect(err).To(BeNil())
			Expect(brief.Version).To(Equal(1))
			Expect(brief.IsValid).To(BeFalse())
		})

		It("updates in place and bumps the version on re-save", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			_, err := s.Brief().Upsert(context.TODO(), model.Brief{
				ID:        uuid.New(),
				ProjectID: projectID,
				Payload:   model.MakeJSONField(api.BriefPayload{NombreComercial: "Acme"}),
			})
			Expect(err).To(BeNil())

			brief, err := s.Brief().Upsert(context.TODO(), model.Brief{
				ID:        uuid.New(),
				ProjectID: projectID,
				Payload:   model.MakeJSONField(api.BriefPayload{NombreComercial: "Acme v2"}),
				IsValid:   true,
			})
			Expect(err).To(BeNil())
			Expect(brief.Version).To(Equal(2))
			Expect(brief.IsValid).To(BeTrue())
			Expect(brief.Payload.Data.NombreComercial).To(Equal("Acme v2"))

			var count int64
			Expect(gormdb.Model(&model.Brief{}).Where("project_id = ?", projectID).Count(&count).Error).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
