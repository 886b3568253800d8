package store_test

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

var _ = Describe("project store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM contexts;")
		gormdb.Exec("DELETE FROM briefs;")
		gormdb.Exec("DELETE FROM avatars;")
		gormdb.Exec("DELETE FROM ads_creation;")
		gormdb.Exec("DELETE FROM competitors_strategic;")
		gormdb.Exec("DELETE FROM analysis_jobs;")
		gormdb.Exec("DELETE FROM projects;")
	})

	Context("create", func() {
		It("successfully creates a project", func() {
			project, err := s.Project().Create(context.TODO(), model.Project{
				ID:     uuid.New(),
				Name:   "lanzamiento Q3",
				Status: "draft",
				UserID: "user-1",
			})
			Expect(err).To(BeNil())
			Expect(project.Name).To(Equal("lanzamiento Q3"))
			Expect(project.Status).To(Equal("draft"))
		})
	})

	Context("list", func() {
		It("successfully lists all the projects", func() {
			Expect(gormdb.Create(&model.Project{ID: uuid.New(), Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Project{ID: uuid.New(), Name: "p2", Status: "draft"}).Error).To(BeNil())

			projects, err := s.Project().List(context.TODO(), store.NewProjectQueryFilter())
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(2))
		})

		It("filters projects by user", func() {
			Expect(gormdb.Create(&model.Project{ID: uuid.New(), Name: "p1", Status: "draft", UserID: "user-1"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Project{ID: uuid.New(), Name: "p2", Status: "draft", UserID: "user-2"}).Error).To(BeNil())

			projects, err := s.Project().List(context.TODO(), store.NewProjectQueryFilter().ByUserID("user-1"))
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].Name).To(Equal("p1"))
		})
	})

	Context("get", func() {
		It("returns ErrRecordNotFound for a missing project", func() {
			_, err := s.Project().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("delete", func() {
		It("deletes the project and its children", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: uuid.New(), ProjectID: projectID, Slot: 1}).Error).To(BeNil())

			Expect(s.Project().Delete(context.TODO(), projectID)).To(Succeed())

			var count int64
			Expect(gormdb.Model(&model.Avatar{}).Where("project_id = ?", projectID).Count(&count).Error).To(BeNil())
			Expect(count).To(BeZero())
		})
	})

	Context("stats", func() {
		It("counts avatars, jobs, competitors and ads", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: uuid.New(), ProjectID: projectID, Slot: 1}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: uuid.New(), ProjectID: projectID, Slot: 2}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Competitor{ID: uuid.New(), ProjectID: projectID, Nombre: "acme"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: uuid.New(), ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())

			stats, err := s.Project().Stats(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(stats.Avatars).To(Equal(int64(2)))
			Expect(stats.Jobs).To(Equal(int64(1)))
			Expect(stats.Competitors).To(Equal(int64(1)))
			Expect(stats.Ads).To(BeZero())
			Expect(stats.HasBrief).To(BeFalse())
		})
	})

	Context("contexts", func() {
		It("upserts a context keyed by project and kind", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			first, _ := json.Marshal(map[string]string{"resumen_ejecutivo": "v1"})
			_, err := s.Project().UpsertContext(context.TODO(), model.ProjectContext{
				ID:        uuid.New(),
				ProjectID: projectID,
				Kind:      model.ContextKindMarket,
				Content:   first,
			})
			Expect(err).To(BeNil())

			second, _ := json.Marshal(map[string]string{"resumen_ejecutivo": "v2"})
			_, err = s.Project().UpsertContext(context.TODO(), model.ProjectContext{
				ID:        uuid.New(),
				ProjectID: projectID,
				Kind:      model.ContextKindMarket,
				Content:   second,
			})
			Expect(err).To(BeNil())

			contexts, err := s.Project().Contexts(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(contexts).To(HaveLen(1))
			Expect(string(contexts[0].Content)).To(ContainSubstring("v2"))
		})
	})
})
