package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/made-to-scale/scaleops/internal/service"
)

type Handler struct {
	projectSrv    *service.ProjectService
	briefSrv      *service.BriefService
	avatarSrv     *service.AvatarService
	analysisSrv   *service.AnalysisService
	competitorSrv *service.CompetitorService
	narrativeSrv  *service.NarrativeService
	adsSrv        *service.AdsService
}

func NewHandler(
	projectService *service.ProjectService,
	briefService *service.BriefService,
	avatarService *service.AvatarService,
	analysisService *service.AnalysisService,
	competitorService *service.CompetitorService,
	narrativeService *service.NarrativeService,
	adsService *service.AdsService,
) *Handler {
	return &Handler{
		projectSrv:    projectService,
		briefSrv:      briefService,
		avatarSrv:     avatarService,
		analysisSrv:   analysisService,
		competitorSrv: competitorService,
		narrativeSrv:  narrativeService,
		adsSrv:        adsService,
	}
}

func (h *Handler) Routes(router chi.Router) {
	router.Get("/health", h.Health)

	router.Route("/api/v1/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Post("/", h.CreateProject)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Delete("/", h.DeleteProject)
			r.Get("/stats", h.GetProjectStats)
			r.Get("/contexts", h.GetProjectContexts)

			r.Get("/brief", h.GetBrief)
			r.Put("/brief", h.SaveBrief)
			r.Post("/brief/generate", h.GenerateAvatars)

			r.Get("/avatars", h.ListAvatars)
			r.Get("/avatars/{avatarId}", h.GetAvatar)
			r.Get("/avatars/{avatarId}/report", h.DownloadAvatarReport)
			r.Get("/avatars/{avatarId}/master", h.GetMasterOutputs)
			r.Get("/avatars/{avatarId}/levels", h.GetLevelOutputs)

			r.Get("/results", h.ListResults)
			r.Get("/results/{jobId}", h.GetResult)
			r.Get("/progress", h.ListAvatarProgress)
			r.Get("/progress/watch", h.WatchProgress)

			r.Get("/competitors", h.ListCompetitors)
			r.Get("/competitors/strategy", h.GetCompetitorStrategy)
			r.Get("/competitors/ads", h.ListCompetitorAds)
			r.Post("/competitors/ads-analysis", h.RequestAdsAnalysis)

			r.Get("/narrative", h.GetNarrative)

			r.Get("/ads", h.ListAds)
			r.Post("/ads", h.GenerateAd)
			r.Delete("/ads/{adId}", h.DeleteAd)
		})
	})
}

// (GET /health)
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Message: message})
}

// renderServiceError maps typed service errors onto HTTP statuses. Unknown
// errors are logged and reported as 500 without leaking internals.
func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *service.ErrResourceNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrBriefNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrNarrativeNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrBriefIncomplete:
		renderError(w, r, http.StatusUnprocessableEntity, err.Error())
	case *service.ErrPipelineUnavailable:
		renderError(w, r, http.StatusBadGateway, err.Error())
	default:
		zap.S().Named("handlers").Errorf("request %s %s failed: %s", r.Method, r.URL.Path, err)
		renderError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// uuidParam parses a chi route parameter as a UUID. On failure it writes a
// 400 and reports !ok.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
