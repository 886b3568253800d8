package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Narrative holds the pipeline's storytelling strategy for a project, one row
// per project. Each column arrives as either a JSON object or plain prose.
type Narrative struct {
	ID                 uuid.UUID `gorm:"primaryKey;"`
	ProjectID          uuid.UUID `gorm:"not null;uniqueIndex:narratives_project_id_key"`
	AvatarID           *uuid.UUID
	CausaJusta         []byte    `gorm:"type:jsonb"`
	TonoDeVoz          []byte    `gorm:"type:jsonb"`
	FrameworkNarrativo []byte    `gorm:"type:jsonb"`
	FiltroCarlJung     []byte    `gorm:"type:jsonb"`
	IdeasDeslizar      []byte    `gorm:"type:jsonb"`
	StackPersuasion    []byte    `gorm:"type:jsonb"`
	CreatedAt          time.Time `gorm:"not null;default:now()"`
}

func (n Narrative) String() string {
	val, _ := json.Marshal(n)
	return string(val)
}
