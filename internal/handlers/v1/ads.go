package v1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/handlers/validator"
)

// (GET /api/v1/projects/{id}/ads)
func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	ads, err := h.adsSrv.ListAds(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, ads)
}

// (POST /api/v1/projects/{id}/ads)
func (h *Handler) GenerateAd(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	form := api.AdGenerateRequest{}
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewAdsValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ad, err := h.adsSrv.GenerateAd(r.Context(), id, &form)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ad)
}

// (DELETE /api/v1/projects/{id}/ads/{adId})
func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	adID, ok := uuidParam(w, r, "adId")
	if !ok {
		return
	}

	if err := h.adsSrv.DeleteAd(r.Context(), id, adID); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
