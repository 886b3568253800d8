package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Competitor is one strategic competitor detected by the pipeline.
type Competitor struct {
	ID             uuid.UUID `gorm:"primaryKey;"`
	ProjectID      uuid.UUID `gorm:"not null;index:competitors_strategic_project_idx"`
	Nombre         string    `gorm:"not null"`
	WebURL         string    `gorm:"column:web_url"`
	Clasificacion  string
	PropuestaValor string
	CreatedAt      time.Time `gorm:"not null;default:now()"`
}

func (Competitor) TableName() string {
	return "competitors_strategic"
}

type CompetitorList []Competitor

func (c Competitor) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}

// CompetitorStrategy is the pipeline's consolidated strategic analysis; the
// newest row per project wins.
type CompetitorStrategy struct {
	ID                    uuid.UUID `gorm:"primaryKey;"`
	ProjectID             uuid.UUID `gorm:"not null;index:competitor_strategies_project_idx"`
	AnalisisFinalIA       []byte    `gorm:"column:analisis_final_ia;type:jsonb"`
	AnalisisFinalAnuncios []byte    `gorm:"column:analisis_final_anuncios;type:jsonb"`
	CreatedAt             time.Time `gorm:"not null;default:now()"`
}

func (CompetitorStrategy) TableName() string {
	return "competitor_strategies"
}

// CompetitorAd is one creative scraped from a competitor's ads library,
// annotated by the tactical analysis pipeline. Column spellings vary upstream;
// normalization happens at read time.
type CompetitorAd struct {
	ID             uuid.UUID `gorm:"primaryKey;"`
	ProjectID      uuid.UUID `gorm:"not null;index:competitor_ads_tactical_project_idx"`
	CompetitorID   *uuid.UUID
	CompetitorName string
	MediaType      string
	MediaURL       string `gorm:"column:media_url"`
	HookGancho     string
	FullCopy       string
	Analysis       []byte    `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"not null;default:now()"`
}

func (CompetitorAd) TableName() string {
	return "competitor_ads_tactical"
}
