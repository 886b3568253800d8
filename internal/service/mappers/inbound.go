package mappers

import (
	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

func ProjectFromApi(id uuid.UUID, resource *api.ProjectCreate) model.Project {
	return model.Project{
		ID:        id,
		Name:      resource.Name,
		Objective: resource.Objective,
		Status:    "draft",
		UserID:    resource.UserID,
	}
}

func BriefFromApi(id, projectID uuid.UUID, payload *api.BriefPayload, valid bool, missing []string) model.Brief {
	brief := model.Brief{
		ID:        id,
		ProjectID: projectID,
		Payload:   model.MakeJSONField(*payload),
		IsValid:   valid,
	}
	if len(missing) > 0 {
		brief.MissingFields = model.MakeJSONField(missing)
	}
	return brief
}

func AdFromApi(id, projectID uuid.UUID, request *api.AdGenerateRequest) model.AdCreation {
	ad := model.AdCreation{
		ID:          id,
		ProjectID:   projectID,
		AvatarID:    request.AvatarID,
		Format:      request.Format,
		FunnelStage: request.FunnelStage,
		ScriptType:  request.ScriptType,
		Angle:       request.Angle,
		Status:      model.JobStatusQueued,
	}
	if request.AngleSource != "" {
		ad.AngleSource = &request.AngleSource
	}
	if request.VideoDurationSeconds > 0 {
		seconds := request.VideoDurationSeconds
		ad.VideoDurationSeconds = &seconds
	}
	if request.CarouselSlides > 0 {
		slides := request.CarouselSlides
		ad.CarouselSlides = &slides
	}
	return ad
}
