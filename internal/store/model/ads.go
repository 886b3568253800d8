package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AdCreation is one generated ad. The request fields are written by the
// service when the user triggers generation; the script and narrative columns
// are filled in later by the pipeline.
type AdCreation struct {
	ID                   uuid.UUID `gorm:"primaryKey;"`
	ProjectID            uuid.UUID `gorm:"not null;index:ads_creation_project_idx"`
	AvatarID             uuid.UUID `gorm:"not null"`
	Format               string    `gorm:"type:VARCHAR(20);not null"`
	FunnelStage          string    `gorm:"type:VARCHAR(10);not null"`
	ScriptType           string    `gorm:"type:VARCHAR(50)"`
	Angle                string
	AngleSource          *string
	VideoDurationSeconds *int
	CarouselSlides       *int
	Script               []byte `gorm:"type:jsonb"`
	ProfileHeadline      string
	Status               string    `gorm:"type:VARCHAR(50);not null;default:queued"`
	CreatedAt            time.Time `gorm:"not null;default:now()"`
}

func (AdCreation) TableName() string {
	return "ads_creation"
}

type AdCreationList []AdCreation

func (a AdCreation) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
