package events

import (
	"github.com/google/uuid"
)

type BriefSavedEvent struct {
	ProjectID uuid.UUID `json:"project_id"`
	BriefID   uuid.UUID `json:"brief_id"`
	Version   int       `json:"version"`
	IsValid   bool      `json:"is_valid"`
}

type GenerationRequestedEvent struct {
	ProjectID uuid.UUID `json:"project_id"`
	BriefID   uuid.UUID `json:"brief_id"`
	UserID    string    `json:"user_id"`
}

type AdRequestedEvent struct {
	ProjectID   uuid.UUID `json:"project_id"`
	AdID        uuid.UUID `json:"ad_id"`
	AvatarID    uuid.UUID `json:"avatar_id"`
	Format      string    `json:"format"`
	FunnelStage string    `json:"funnel_stage"`
}

type AdsAnalysisRequestedEvent struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Competitors int       `json:"competitors"`
}

func (e BriefSavedEvent) PartitionKey() string          { return e.ProjectID.String() }
func (e GenerationRequestedEvent) PartitionKey() string { return e.ProjectID.String() }
func (e AdRequestedEvent) PartitionKey() string         { return e.ProjectID.String() }
func (e AdsAnalysisRequestedEvent) PartitionKey() string {
	return e.ProjectID.String()
}
