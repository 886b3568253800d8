package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job status values reported by the generation pipeline.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusRunning    = "running"
	JobStatusDone       = "done"
	JobStatusSucceeded  = "succeeded"
	JobStatusFailed     = "failed"
	JobStatusCanceled   = "canceled"
)

// JobPayload is the display metadata the pipeline attaches to a job.
type JobPayload struct {
	Name     string `json:"name,omitempty"`
	Headline string `json:"headline,omitempty"`
}

// AnalysisJob rows are created and mutated exclusively by the pipeline; the
// service only ever reads them.
type AnalysisJob struct {
	ID         uuid.UUID `gorm:"primaryKey;"`
	ProjectID  uuid.UUID `gorm:"not null;index:analysis_jobs_project_idx"`
	AvatarID   uuid.UUID `gorm:"not null"`
	AvatarSlot int       `gorm:"not null"`
	Status     string    `gorm:"type:VARCHAR(50);not null;default:queued"`
	Error      *string
	Payload    *JSONField[JobPayload] `gorm:"type:jsonb"`
	CreatedAt  time.Time              `gorm:"not null;default:now()"`
}

type AnalysisJobList []AnalysisJob

func (j AnalysisJob) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

// AvatarOutput is one named analytical section produced for a job. Section
// names are NOT unique per job: the pipeline may write partial or duplicate
// rows, so progress is always counted over distinct names.
type AvatarOutput struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	ProjectID uuid.UUID `gorm:"not null;index:avatar_outputs_project_idx"`
	JobID     uuid.UUID `gorm:"not null;index:avatar_outputs_job_idx"`
	Section   string    `gorm:"not null"`
	Data      []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

// AvatarMasterOutput is one section of the master dossier, keyed by
// project+avatar rather than by job.
type AvatarMasterOutput struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	ProjectID uuid.UUID `gorm:"not null;index:avatar_master_outputs_project_idx"`
	AvatarID  uuid.UUID `gorm:"not null;index:avatar_master_outputs_avatar_idx"`
	JobID     *uuid.UUID
	Section   string    `gorm:"not null"`
	Data      []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

// AvatarLevelOutput is one block of the consciousness-level deep dive.
type AvatarLevelOutput struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	ProjectID uuid.UUID `gorm:"not null;index:avatar_level_outputs_project_idx"`
	AvatarID  uuid.UUID `gorm:"not null"`
	JobID     uuid.UUID
	Level     int       `gorm:"not null"`
	Block     int       `gorm:"not null"`
	Section   string    `gorm:"not null"`
	Data      []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}
