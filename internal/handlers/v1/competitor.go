package v1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/handlers/validator"
)

// (GET /api/v1/projects/{id}/competitors)
func (h *Handler) ListCompetitors(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	competitors, err := h.competitorSrv.ListCompetitors(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, competitors)
}

// (GET /api/v1/projects/{id}/competitors/strategy)
// Returns 204 when the pipeline has not delivered a strategy yet.
func (h *Handler) GetCompetitorStrategy(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	strategy, err := h.competitorSrv.GetStrategy(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	if strategy == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	render.JSON(w, r, strategy)
}

// CompetitorAdsResponse bundles the scraped creatives with the consolidated
// ads commentary.
type CompetitorAdsResponse struct {
	Ads      []api.CompetitorAd `json:"ads"`
	Analysis string             `json:"analysis,omitempty"`
}

// (GET /api/v1/projects/{id}/competitors/ads)
func (h *Handler) ListCompetitorAds(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	ads, analysis, err := h.competitorSrv.ListAds(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, CompetitorAdsResponse{Ads: ads, Analysis: analysis})
}

// (POST /api/v1/projects/{id}/competitors/ads-analysis)
func (h *Handler) RequestAdsAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	form := api.AdsAnalysisRequest{}
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.competitorSrv.RequestAdsAnalysis(r.Context(), id, &form); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
