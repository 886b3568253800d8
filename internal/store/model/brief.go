package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
)

type Brief struct {
	ID            uuid.UUID                    `gorm:"primaryKey;"`
	ProjectID     uuid.UUID                    `gorm:"not null;uniqueIndex:briefs_project_id_key"`
	Payload       *JSONField[api.BriefPayload] `gorm:"type:jsonb;not null"`
	Version       int                          `gorm:"not null;default:1"`
	IsValid       bool                         `gorm:"not null;default:false"`
	MissingFields *JSONField[[]string]         `gorm:"type:jsonb"`
	CreatedAt     time.Time                    `gorm:"not null;default:now()"`
	UpdatedAt     time.Time
}

func (b Brief) String() string {
	val, _ := json.Marshal(b)
	return string(val)
}
