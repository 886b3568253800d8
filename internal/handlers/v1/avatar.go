package v1

import (
	"io"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// (GET /api/v1/projects/{id}/avatars)
func (h *Handler) ListAvatars(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	avatars, err := h.avatarSrv.ListAvatars(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, avatars)
}

// (GET /api/v1/projects/{id}/avatars/{avatarId})
func (h *Handler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	avatarID, ok := uuidParam(w, r, "avatarId")
	if !ok {
		return
	}

	avatar, err := h.avatarSrv.GetAvatar(r.Context(), avatarID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, avatar)
}

// (GET /api/v1/projects/{id}/avatars/{avatarId}/report)
// Streams the PDF produced by the pipeline straight through to the client.
func (h *Handler) DownloadAvatarReport(w http.ResponseWriter, r *http.Request) {
	projectID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	avatarID, ok := uuidParam(w, r, "avatarId")
	if !ok {
		return
	}

	report, filename, err := h.avatarSrv.DownloadReport(r.Context(), projectID, avatarID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	defer report.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := io.Copy(w, report); err != nil {
		zap.S().Named("handlers").Warnf("report stream interrupted: %s", err)
	}
}
