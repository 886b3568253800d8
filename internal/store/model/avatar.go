package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Avatar holds the raw profile blob written by the pipeline. The profile has
// no stable schema; normalization happens at read time in internal/normalize.
type Avatar struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	ProjectID uuid.UUID `gorm:"not null;uniqueIndex:avatars_project_slot"`
	Slot      int       `gorm:"not null;uniqueIndex:avatars_project_slot"`
	Etiqueta  *string
	Profile   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

type AvatarList []Avatar

func (a Avatar) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
