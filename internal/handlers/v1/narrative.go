package v1

import (
	"net/http"

	"github.com/go-chi/render"
)

// (GET /api/v1/projects/{id}/narrative)
func (h *Handler) GetNarrative(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	narrative, err := h.narrativeSrv.GetNarrative(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, narrative)
}
