package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	Name      string    `gorm:"not null"`
	Objective string
	Status    string    `gorm:"type:VARCHAR(50);not null;default:draft"`
	UserID    string    `gorm:"column:user_id;index:projects_user_id_idx"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time

	Brief       *Brief           `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Avatars     []Avatar         `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Contexts    []ProjectContext `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Jobs        []AnalysisJob    `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Narrative   *Narrative       `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Competitors []Competitor     `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Ads         []AdCreation     `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
}

type ProjectList []Project

func (p Project) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}

const (
	ContextKindMarket = "context_p1"
	ContextKindSocial = "context_p2"
)

// ProjectContext is one row of the contexts table: the market research
// (context_p1) or social listening (context_p2) blob for a project.
type ProjectContext struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	ProjectID uuid.UUID `gorm:"not null;uniqueIndex:contexts_project_kind"`
	Kind      string    `gorm:"type:VARCHAR(50);not null;uniqueIndex:contexts_project_kind"`
	Content   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProjectContext) TableName() string {
	return "contexts"
}
