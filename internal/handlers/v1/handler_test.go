package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/events"
	handlers "github.com/made-to-scale/scaleops/internal/handlers/v1"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/service"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/store/model"
	"github.com/made-to-scale/scaleops/internal/webhooks"
)

var _ = Describe("api handlers", Ordered, func() {
	var (
		s            store.Store
		gormdb       *gorm.DB
		apiServer    *httptest.Server
		pipeline     *httptest.Server
		producer     *events.EventProducer
		pipelineMu   sync.Mutex
		pipelineBody []byte
	)

	lastPipelineBody := func() []byte {
		pipelineMu.Lock()
		defer pipelineMu.Unlock()
		return pipelineBody
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		pipeline = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			pipelineMu.Lock()
			pipelineBody = body
			pipelineMu.Unlock()
			w.WriteHeader(http.StatusOK)
		}))

		cfg := config.NewDefault()
		cfg.Service.Pipeline.WebhookBaseUrl = pipeline.URL
		client := webhooks.NewClient(cfg)

		producer = events.NewEventProducer(&events.StdoutWriter{})

		manifests := progress.DefaultManifests()
		tracker := progress.NewTracker(progress.NewStoreReader(s), manifests, 10*time.Millisecond, 50*time.Millisecond)

		h := handlers.NewHandler(
			service.NewProjectService(s),
			service.NewBriefService(s, client, producer),
			service.NewAvatarService(s, client),
			service.NewAnalysisService(s, manifests, tracker),
			service.NewCompetitorService(s, client, producer),
			service.NewNarrativeService(s),
			service.NewAdsService(s, client, producer),
		)

		router := chi.NewRouter()
		h.Routes(router)
		apiServer = httptest.NewServer(router)
	})

	AfterAll(func() {
		apiServer.Close()
		pipeline.Close()
		_ = producer.Close()
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM briefs;")
		gormdb.Exec("DELETE FROM avatars;")
		gormdb.Exec("DELETE FROM ads_creation;")
		gormdb.Exec("DELETE FROM projects;")
	})

	postJSON := func(path string, payload any) *http.Response {
		body, err := json.Marshal(payload)
		Expect(err).To(BeNil())
		resp, err := http.Post(apiServer.URL+path, "application/json", bytes.NewReader(body))
		Expect(err).To(BeNil())
		return resp
	}

	Context("health", func() {
		It("returns 200", func() {
			resp, err := http.Get(apiServer.URL + "/health")
			Expect(err).To(BeNil())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})

	Context("projects", func() {
		It("creates a project", func() {
			resp := postJSON("/api/v1/projects", api.ProjectCreate{Name: "lanzamiento", UserID: "user-1"})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var project api.Project
			Expect(json.NewDecoder(resp.Body).Decode(&project)).To(Succeed())
			Expect(project.Name).To(Equal("lanzamiento"))
			Expect(project.Status).To(Equal("draft"))
		})

		It("rejects a whitespace-only name", func() {
			resp := postJSON("/api/v1/projects", api.ProjectCreate{Name: "   "})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for a missing project", func() {
			resp, err := http.Get(fmt.Sprintf("%s/api/v1/projects/%s", apiServer.URL, uuid.New()))
			Expect(err).To(BeNil())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a malformed project id", func() {
			resp, err := http.Get(apiServer.URL + "/api/v1/projects/not-a-uuid")
			Expect(err).To(BeNil())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("brief", func() {
		It("saves an incomplete draft and reports missing fields", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			request, err := http.NewRequest(http.MethodPut,
				fmt.Sprintf("%s/api/v1/projects/%s/brief", apiServer.URL, projectID),
				bytes.NewReader([]byte(`{"nombre_comercial":"Acme"}`)))
			Expect(err).To(BeNil())
			resp, err := http.DefaultClient.Do(request)
			Expect(err).To(BeNil())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var brief api.Brief
			Expect(json.NewDecoder(resp.Body).Decode(&brief)).To(Succeed())
			Expect(brief.IsValid).To(BeFalse())
			Expect(brief.MissingFields).NotTo(BeEmpty())
		})

		It("refuses generation while the brief is incomplete", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Brief{
				ID:            uuid.New(),
				ProjectID:     projectID,
				Payload:       model.MakeJSONField(api.BriefPayload{NombreComercial: "Acme"}),
				IsValid:       false,
				MissingFields: model.MakeJSONField([]string{"sector"}),
			}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/brief/generate", projectID), nil)
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Context("competitor ads analysis", func() {
		It("rejects fewer than three competitors", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/competitors/ads-analysis", projectID), api.AdsAnalysisRequest{
				Competitors: []api.AdsAnalysisCompetitor{
					{Name: "a", AdsLibraryURL: "https://example.com/a"},
					{Name: "b", AdsLibraryURL: "https://example.com/b"},
				},
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("accepts a valid request", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/competitors/ads-analysis", projectID), api.AdsAnalysisRequest{
				Competitors: []api.AdsAnalysisCompetitor{
					{Name: "a", AdsLibraryURL: "https://example.com/a"},
					{Name: "b", AdsLibraryURL: "https://example.com/b"},
					{Name: "c", AdsLibraryURL: "https://example.com/c"},
				},
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusAccepted))
		})
	})

	Context("ads", func() {
		It("returns 404 when the avatar does not belong to the project", func() {
			projectID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/ads", projectID), api.AdGenerateRequest{
				AvatarID:    uuid.New(),
				FunnelStage: "TOFU",
				Format:      "image",
				Angle:       "dolor principal",
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("drops strategy-derived angle sources before calling the pipeline", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: avatarID, ProjectID: projectID, Slot: 1}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/ads", projectID), api.AdGenerateRequest{
				AvatarID:    avatarID,
				FunnelStage: "TOFU",
				Format:      "image",
				Angle:       "dolor principal",
				AngleSource: "Estrategia TOFU",
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var payload map[string]any
			Expect(json.Unmarshal(lastPipelineBody(), &payload)).To(Succeed())
			Expect(payload["angle_source"]).To(BeNil())
		})

		It("rejects a video ad without a script type or duration", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: avatarID, ProjectID: projectID, Slot: 1}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/ads", projectID), api.AdGenerateRequest{
				AvatarID:    avatarID,
				FunnelStage: "TOFU",
				Format:      "video",
				Angle:       "dolor principal",
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("creates a queued ad for a valid request", func() {
			projectID := uuid.New()
			avatarID := uuid.New()
			Expect(gormdb.Create(&model.Project{ID: projectID, Name: "p1", Status: "draft"}).Error).To(BeNil())
			Expect(gormdb.Create(&model.Avatar{ID: avatarID, ProjectID: projectID, Slot: 1}).Error).To(BeNil())

			resp := postJSON(fmt.Sprintf("/api/v1/projects/%s/ads", projectID), api.AdGenerateRequest{
				AvatarID:             avatarID,
				FunnelStage:          "MOFU",
				Format:               "video",
				ScriptType:           "AIDA",
				Angle:                "transformacion deseada",
				VideoDurationSeconds: 30,
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var ad api.AdCreation
			Expect(json.NewDecoder(resp.Body).Decode(&ad)).To(Succeed())
			Expect(ad.Status).To(Equal("queued"))
			Expect(ad.VideoDurationSeconds).To(Equal(30))
		})
	})
})
