package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/service/mappers"
)

const (
	defaultWatchWait = 25 * time.Second
	maxWatchWait     = 2 * time.Minute
)

// (GET /api/v1/projects/{id}/results)
func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	results, err := h.analysisSrv.ListResults(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, results)
}

// (GET /api/v1/projects/{id}/results/{jobId})
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	jobID, ok := uuidParam(w, r, "jobId")
	if !ok {
		return
	}

	result, err := h.analysisSrv.GetResult(r.Context(), id, jobID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// (GET /api/v1/projects/{id}/progress)
func (h *Handler) ListAvatarProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	progressList, err := h.analysisSrv.ListAvatarProgress(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, progressList)
}

// ProgressWatchResponse is the long-poll payload. Keys are job and avatar ids.
type ProgressWatchResponse struct {
	Jobs    map[uuid.UUID]api.ProgressSnapshot `json:"jobs"`
	Masters map[uuid.UUID]api.ProgressSnapshot `json:"masters"`
}

// (GET /api/v1/projects/{id}/progress/watch)
// Long-poll replacement for server-push: blocks until the next evaluation and
// returns the freshest snapshots. Clients re-request until everything is ready.
func (h *Handler) WatchProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	scope := progress.Scope{ProjectID: id}
	if raw := r.URL.Query().Get("avatar_id"); raw != "" {
		avatarID, err := uuid.Parse(raw)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, "invalid avatar_id")
			return
		}
		scope.AvatarID = &avatarID
	}

	wait := defaultWatchWait
	if raw := r.URL.Query().Get("wait"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			renderError(w, r, http.StatusBadRequest, "invalid wait")
			return
		}
		if parsed > maxWatchWait {
			parsed = maxWatchWait
		}
		wait = parsed
	}

	update, err := h.analysisSrv.WatchProgress(r.Context(), scope, wait)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	response := ProgressWatchResponse{
		Jobs:    make(map[uuid.UUID]api.ProgressSnapshot, len(update.Jobs)),
		Masters: make(map[uuid.UUID]api.ProgressSnapshot, len(update.Masters)),
	}
	for jobID, snapshot := range update.Jobs {
		response.Jobs[jobID] = mappers.SnapshotToApi(snapshot)
	}
	for avatarID, snapshot := range update.Masters {
		response.Masters[avatarID] = mappers.SnapshotToApi(snapshot)
	}
	render.JSON(w, r, response)
}

// (GET /api/v1/projects/{id}/avatars/{avatarId}/master)
func (h *Handler) GetMasterOutputs(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	avatarID, ok := uuidParam(w, r, "avatarId")
	if !ok {
		return
	}

	outputs, err := h.analysisSrv.GetMasterOutputs(r.Context(), id, avatarID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, outputs)
}

// (GET /api/v1/projects/{id}/avatars/{avatarId}/levels)
func (h *Handler) GetLevelOutputs(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	avatarID, ok := uuidParam(w, r, "avatarId")
	if !ok {
		return
	}

	level := 0
	if raw := r.URL.Query().Get("level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			renderError(w, r, http.StatusBadRequest, "invalid level")
			return
		}
		level = parsed
	}

	outputs, err := h.analysisSrv.GetLevelOutputs(r.Context(), id, avatarID, level)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, outputs)
}
