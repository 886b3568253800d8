package mappers

import (
	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/normalize"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

func ProjectToApi(project *model.Project) api.Project {
	return api.Project{
		ID:        project.ID,
		Name:      project.Name,
		Objective: project.Objective,
		Status:    project.Status,
		UserID:    project.UserID,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

func ProjectListToApi(projects model.ProjectList) []api.Project {
	out := make([]api.Project, 0, len(projects))
	for i := range projects {
		out = append(out, ProjectToApi(&projects[i]))
	}
	return out
}

func BriefToApi(brief *model.Brief) api.Brief {
	out := api.Brief{
		ID:        brief.ID,
		ProjectID: brief.ProjectID,
		Version:   brief.Version,
		IsValid:   brief.IsValid,
		UpdatedAt: brief.UpdatedAt,
	}
	if brief.Payload != nil {
		out.Payload = brief.Payload.Data
	}
	if brief.MissingFields != nil {
		out.MissingFields = brief.MissingFields.Data
	}
	return out
}

func SnapshotToApi(snapshot progress.Snapshot) api.ProgressSnapshot {
	return api.ProgressSnapshot{
		CompletedSections: snapshot.CompletedSections,
		TotalExpected:     snapshot.TotalExpected,
		MissingSections:   snapshot.MissingSections,
		IsReady:           snapshot.IsReady,
	}
}

func AnalysisResultToApi(job *model.AnalysisJob, snapshot progress.Snapshot) api.AnalysisResult {
	result := api.AnalysisResult{
		JobID:         job.ID,
		AvatarID:      job.AvatarID,
		AvatarSlot:    job.AvatarSlot,
		Status:        api.JobStatus(job.Status),
		DerivedStatus: api.JobStatus(progress.DeriveStatus(job.Status, snapshot)),
		CreatedAt:     job.CreatedAt,
		Progress:      SnapshotToApi(snapshot),
	}
	if job.Error != nil {
		result.Error = *job.Error
	}
	if job.Payload != nil {
		result.Name = job.Payload.Data.Name
		result.Headline = job.Payload.Data.Headline
	}
	return result
}

func MasterOutputToApi(output *model.AvatarMasterOutput) api.SectionOutput {
	return api.SectionOutput{
		Section:   progress.NormalizeSection(output.Section),
		Data:      dataToMap(output.Data),
		CreatedAt: output.CreatedAt,
	}
}

func LevelOutputToApi(output *model.AvatarLevelOutput) api.LevelOutput {
	return api.LevelOutput{
		Level:     output.Level,
		Block:     output.Block,
		Section:   progress.NormalizeSection(output.Section),
		Data:      dataToMap(output.Data),
		CreatedAt: output.CreatedAt,
	}
}

func CompetitorToApi(competitor *model.Competitor) api.Competitor {
	return api.Competitor{
		ID:             competitor.ID,
		ProjectID:      competitor.ProjectID,
		Nombre:         competitor.Nombre,
		WebURL:         competitor.WebURL,
		Clasificacion:  competitor.Clasificacion,
		PropuestaValor: competitor.PropuestaValor,
	}
}

func AdToApi(ad *model.AdCreation) api.AdCreation {
	out := api.AdCreation{
		ID:              ad.ID,
		ProjectID:       ad.ProjectID,
		AvatarID:        ad.AvatarID,
		Format:          ad.Format,
		FunnelStage:     ad.FunnelStage,
		ScriptType:      ad.ScriptType,
		Angle:           ad.Angle,
		Script:          dataToMap(ad.Script),
		ProfileHeadline: ad.ProfileHeadline,
		Status:          ad.Status,
		CreatedAt:       ad.CreatedAt,
	}
	if ad.AngleSource != nil {
		out.AngleSource = *ad.AngleSource
	}
	if ad.VideoDurationSeconds != nil {
		out.VideoDurationSeconds = *ad.VideoDurationSeconds
	}
	if ad.CarouselSlides != nil {
		out.CarouselSlides = *ad.CarouselSlides
	}
	return out
}

func dataToMap(raw []byte) map[string]any {
	return normalize.DataMap(raw)
}

func CompetitorAdsToApi(ads []model.CompetitorAd, competitors model.CompetitorList) []api.CompetitorAd {
	names := make(map[uuid.UUID]string, len(competitors))
	for _, competitor := range competitors {
		names[competitor.ID] = competitor.Nombre
	}
	out := make([]api.CompetitorAd, 0, len(ads))
	for _, ad := range ads {
		out = append(out, normalize.CompetitorAd(ad, names))
	}
	return out
}
