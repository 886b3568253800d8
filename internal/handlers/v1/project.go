package v1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/handlers/validator"
	"github.com/made-to-scale/scaleops/internal/service"
)

// (GET /api/v1/projects)
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var filter *service.ProjectFilter
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter = &service.ProjectFilter{UserID: userID}
	}

	projects, err := h.projectSrv.ListProjects(r.Context(), filter)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, projects)
}

// (POST /api/v1/projects)
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	form := api.ProjectCreate{}
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewProjectValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectSrv.CreateProject(r.Context(), &form)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, project)
}

// (GET /api/v1/projects/{id})
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectSrv.GetProject(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, project)
}

// (DELETE /api/v1/projects/{id})
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectSrv.DeleteProject(r.Context(), id); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// (GET /api/v1/projects/{id}/stats)
func (h *Handler) GetProjectStats(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.projectSrv.GetProjectStats(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// (GET /api/v1/projects/{id}/contexts)
func (h *Handler) GetProjectContexts(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	contexts, err := h.projectSrv.GetProjectContexts(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, contexts)
}
