package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/service"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

var _ = Describe("analysis service", Ordered, func() {
	var (
		s         store.Store
		gormdb    *gorm.DB
		manifests progress.ManifestSet
		srv       *service.AnalysisService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		manifests = progress.DefaultManifests()
		tracker := progress.NewTracker(progress.NewStoreReader(s), manifests, 10*time.Millisecond, 50*time.Millisecond)
		srv = service.NewAnalysisService(s, manifests, tracker)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM avatar_master_outputs;")
		gormdb.Exec("DELETE FROM avatar_outputs;")
		gormdb.Exec("DELETE FROM analysis_jobs;")
		gormdb.Exec("DELETE FROM avatars;")
		gormdb.Exec("DELETE FROM projects;")
	})

	Context("list results", func() {
		It("derives succeeded once every expected section is present", func() {
			projectID := uuid.New()
			jobID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: jobID, ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())

			for _, section := range manifests.AnalysisJob.Sections {
				Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: jobID, Section: section, Data: []byte(`{}`)}).Error).To(BeNil())
			}

			results, err := srv.ListResults(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Status).To(Equal(api.JobStatusRunning))
			Expect(results[0].DerivedStatus).To(Equal(api.JobStatusSucceeded))
			Expect(results[0].Progress.IsReady).To(BeTrue())
		})

		It("reports partial progress with missing sections in manifest order", func() {
			projectID := uuid.New()
			jobID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: jobID, ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())

			first := manifests.AnalysisJob.Sections[0]
			Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: jobID, Section: first, Data: []byte(`{}`)}).Error).To(BeNil())

			results, err := srv.ListResults(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(results).To(HaveLen(1))
			Expect(results[0].DerivedStatus).To(Equal(api.JobStatusRunning))
			Expect(results[0].Progress.CompletedSections).To(Equal(1))
			Expect(results[0].Progress.MissingSections).To(Equal(manifests.AnalysisJob.Sections[1:]))
		})

		It("keeps a terminal failed status even when all sections exist", func() {
			projectID := uuid.New()
			jobID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: jobID, ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusFailed}).Error).To(BeNil())

			for _, section := range manifests.AnalysisJob.Sections {
				Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: jobID, Section: section, Data: []byte(`{}`)}).Error).To(BeNil())
			}

			results, err := srv.ListResults(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(results[0].DerivedStatus).To(Equal(api.JobStatusFailed))
		})
	})

	Context("get result", func() {
		It("scopes sections to the requested job", func() {
			projectID := uuid.New()
			jobID := uuid.New()
			otherJobID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: jobID, ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: otherJobID, ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 2, Status: model.JobStatusRunning}).Error).To(BeNil())

			first := manifests.AnalysisJob.Sections[0]
			Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: jobID, Section: first, Data: []byte(`{}`)}).Error).To(BeNil())
			for _, section := range manifests.AnalysisJob.Sections {
				Expect(gormdb.Create(&model.AvatarOutput{ID: uuid.New(), ProjectID: projectID, JobID: otherJobID, Section: section, Data: []byte(`{}`)}).Error).To(BeNil())
			}

			result, err := srv.GetResult(context.TODO(), projectID, jobID)
			Expect(err).To(BeNil())
			Expect(result.JobID).To(Equal(jobID))
			Expect(result.Progress.CompletedSections).To(Equal(1))
			Expect(result.Progress.IsReady).To(BeFalse())
		})

		It("returns not found for a job of another project", func() {
			projectID := uuid.New()
			jobID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AnalysisJob{ID: jobID, ProjectID: projectID, AvatarID: uuid.New(), AvatarSlot: 1, Status: model.JobStatusRunning}).Error).To(BeNil())

			_, err := srv.GetResult(context.TODO(), uuid.New(), jobID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))

			_, err = srv.GetResult(context.TODO(), projectID, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("master outputs", func() {
		It("returns the newest row per section, normalized", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: avatarID, ProjectID: projectID, Slot: 1}).Error).To(BeNil())

			now := time.Now()
			Expect(gormdb.Create(&model.AvatarMasterOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Section: "Motivadores ", Data: []byte(`{"v":"old"}`), CreatedAt: now.Add(-time.Hour)}).Error).To(BeNil())
			Expect(gormdb.Create(&model.AvatarMasterOutput{ID: uuid.New(), ProjectID: projectID, AvatarID: avatarID, Section: "motivadores", Data: []byte(`{"v":"new"}`), CreatedAt: now}).Error).To(BeNil())

			outputs, err := srv.GetMasterOutputs(context.TODO(), projectID, avatarID)
			Expect(err).To(BeNil())
			Expect(outputs).To(HaveLen(1))
			Expect(outputs[0].Section).To(Equal("motivadores"))
			Expect(outputs[0].Data).To(HaveKeyWithValue("v", "new"))
		})

		It("returns not found for an unknown avatar", func() {
			_, err := srv.GetMasterOutputs(context.TODO(), uuid.New(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("avatar progress", func() {
		It("reports zero progress for avatars without outputs", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: avatarID, ProjectID: projectID, Slot: 1}).Error).To(BeNil())

			progressList, err := srv.ListAvatarProgress(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(progressList).To(HaveLen(1))
			Expect(progressList[0].Progress.CompletedSections).To(BeZero())
			Expect(progressList[0].Progress.TotalExpected).To(Equal(len(manifests.AvatarMaster.Sections)))
			Expect(progressList[0].Progress.IsReady).To(BeFalse())
		})
	})
})
