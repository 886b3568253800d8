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

var _ = Describe("analysis store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM avatar_level_outputs;")
		gormdb.Exec("DELETE FROM avatar_master_outputs;")
		gormdb.Exec("DELETE FROM avatar_outputs;")
		gormdb.Exec("DELETE FROM analysis_jobs;")
		gormdb.Exec("DELETE FROM projects;")
	})

	Context("jobs", func() {
		It("lists jobs for one project only", func() {
			projectID := uuid.New()
			otherID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Project{ID: otherID, Name: "p2", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: uuid.New(), ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: uuid.New(), ProjectID: otherID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())

			jobs, err := s.Analysis().ListJobs(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].ProjectID).To(Equal(projectID))
		})
	})

	Context("outputs", func() {
		It("filters job outputs by job ids", func() {
			projectID := uuid.New()
			jobID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: jobID, Section: "dolores"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: uuid.New(), Section: "deseos"}).Error).To(BeNil())

			outputs, err := s.Analysis().ListOutputs(context.TODO(), store.NewOutputQueryFilter().ByJobIDs([]uuid.UUID{jobID}))
			Expect(err).To(BeNil())
			Expect(outputs).To(HaveLen(1))
			Expect(outputs[0].Section).To(Equal("dolores"))
		})

		It("filters master outputs by avatar", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarMasterOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Section: "motivadores"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarMasterOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: uuid.New(), Section: "motivadores"}).Error).To(BeNil())

			outputs, err := s.Analysis().ListMasterOutputs(context.TODO(), store.NewOutputQueryFilter().ByProjectID(projectID).ByAvatarID(avatarID))
			Expect(err).To(BeNil())
			Expect(outputs).To(HaveLen(1))
			Expect(outputs[0].AvatarID).To(Equal(avatarID))
		})

		It("orders master outputs oldest first", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			now := time.Now()
			Expect(gormdb.Create(&model.AvatarMasterOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Section: "second", CreatedAt: now}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarMasterOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Section: "first", CreatedAt: now.Add(-time.Hour)}).Error).To(BeNil())

			outputs, err := s.Analysis().ListMasterOutputs(context.TODO(), store.NewOutputQueryFilter().ByAvatarID(avatarID))
			Expect(err).To(BeNil())
			Expect(outputs).To(HaveLen(2))
			Expect(outputs[0].Section).To(Equal("first"))
		})

		It("filters level outputs by level", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarLevelOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Level: 1, Block: 1, Section: "bloque_1"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarLevelOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Level: 2, Block: 1, Section: "bloque_1"}).Error).To(BeNil())

			outputs, err := s.Analysis().ListLevelOutputs(context.TODO(), store.NewOutputQueryFilter().ByAvatarID(avatarID).ByLevel(2))
			Expect(err).To(BeNil())
			Expect(outputs).To(HaveLen(1))
			Expect(outputs[0].Level).To(Equal(2))
		})
	})
})
