package v1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/made-to-scale/scaleops/api/v1"
)

// (GET /api/v1/projects/{id}/brief)
func (h *Handler) GetBrief(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	brief, err := h.briefSrv.GetBrief(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, brief)
}

// (PUT /api/v1/projects/{id}/brief)
// Drafts are always persisted; validity and missing fields travel in the
// response so the client can show what is left to fill in.
func (h *Handler) SaveBrief(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	payload := api.BriefPayload{}
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	brief, err := h.briefSrv.SaveBrief(r.Context(), id, &payload)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, brief)
}

// (POST /api/v1/projects/{id}/brief/generate)
func (h *Handler) GenerateAvatars(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.briefSrv.GenerateAvatars(r.Context(), id, r.URL.Query().Get("user_id")); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
