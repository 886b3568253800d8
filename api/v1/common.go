package v1

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the coarse lifecycle reported by the generation pipeline.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusRunning    JobStatus = "running"
	JobStatusDone       JobStatus = "done"
	JobStatusSucceeded  JobStatus = "succeeded"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCanceled   JobStatus = "canceled"
)

// IsTerminal reports whether the pipeline will make no further writes for the job.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusDone, JobStatusSucceeded, JobStatusFailed, JobStatusCanceled:
		return true
	}
	return false
}

type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Objective string    `json:"objective,omitempty"`
	Status    string    `json:"status"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectCreate struct {
	Name      string `json:"name" validate:"required,project_name"`
	Objective string `json:"objective"`
	UserID    string `json:"user_id"`
}

// ProjectStats backs the project overview tab.
type ProjectStats struct {
	HasBrief     bool  `json:"has_brief"`
	HasNarrative bool  `json:"has_narrative"`
	Avatars      int64 `json:"avatars_count"`
	Jobs         int64 `json:"jobs_count"`
	Competitors  int64 `json:"competitors_count"`
	Ads          int64 `json:"ads_count"`
}

// BriefPayload is the structured questionnaire feeding the generation
// pipeline. Field names follow the pipeline contract.
type BriefPayload struct {
	NombreComercial              string   `json:"nombre_comercial"`
	NombreInterno                string   `json:"nombre_interno"`
	MisionEmpresa                string   `json:"mision_empresa"`
	VisionEmpresa                string   `json:"vision_empresa"`
	TipoOferta                   string   `json:"tipo_oferta"`
	Sector                       string   `json:"sector"`
	PropuestaValorPromesa        string   `json:"propuesta_valor_promesa"`
	URLProducto                  string   `json:"url_producto,omitempty"`
	SegmentoClienteObjetivo      string   `json:"segmento_cliente_objetivo"`
	ProblemaPrincipalResuelve    string   `json:"problema_principal_resuelve"`
	PersonasExperimentanProblema string   `json:"personas_experimentan_problema"`
	TransformacionDeseada        string   `json:"transformacion_deseada"`
	PaisObjetivo                 string   `json:"pais_objetivo"`
	PrecioAprox                  string   `json:"precio_aprox"`
	ObjetivoProyecto             string   `json:"objetivo_proyecto"`
	TemaClave                    string   `json:"tema_clave"`
	CompetidoresRelevantes       []string `json:"competidores_relevantes"`
	ReferentesInspiracion        []string `json:"referentes_inspiracion"`
	TieneLimitesComunicacion     string   `json:"tiene_limites_comunicacion"`
	DetallesLimitesComunicacion  string   `json:"detalles_limites_comunicacion"`
}

type Brief struct {
	ID            uuid.UUID    `json:"id"`
	ProjectID     uuid.UUID    `json:"project_id"`
	Payload       BriefPayload `json:"payload"`
	Version       int          `json:"version"`
	IsValid       bool         `json:"is_valid"`
	MissingFields []string     `json:"missing_fields"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Avatar is the normalized buyer-persona view. Demographic fields are best
// effort: the pipeline emits them under unstable key spellings.
type Avatar struct {
	ID          uuid.UUID      `json:"id"`
	ProjectID   uuid.UUID      `json:"project_id"`
	Slot        int            `json:"slot"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Age         string         `json:"age,omitempty"`
	Gender      string         `json:"gender,omitempty"`
	Income      string         `json:"income,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// ProgressSnapshot is the per-owner readiness view derived from section rows.
type ProgressSnapshot struct {
	CompletedSections int      `json:"completed_sections"`
	TotalExpected     int      `json:"total_expected"`
	MissingSections   []string `json:"missing_sections,omitempty"`
	IsReady           bool     `json:"is_ready"`
}

// AnalysisResult joins one analysis job with its aggregated output progress.
// DerivedStatus reports succeeded ahead of the job's own status once every
// expected section has been observed.
type AnalysisResult struct {
	JobID         uuid.UUID        `json:"job_id"`
	AvatarID      uuid.UUID        `json:"avatar_id"`
	AvatarSlot    int              `json:"avatar_slot"`
	Status        JobStatus        `json:"status"`
	DerivedStatus JobStatus        `json:"derived_status"`
	Name          string           `json:"name"`
	Headline      string           `json:"headline,omitempty"`
	Error         string           `json:"error,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Progress      ProgressSnapshot `json:"progress"`
}

type AvatarProgress struct {
	AvatarID uuid.UUID        `json:"avatar_id"`
	Slot     int              `json:"slot"`
	Progress ProgressSnapshot `json:"progress"`
}

type SectionOutput struct {
	Section   string         `json:"section"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

type LevelOutput struct {
	Level     int            `json:"level"`
	Block     int            `json:"block"`
	Section   string         `json:"section"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

type Narrative struct {
	ID                 uuid.UUID      `json:"id"`
	ProjectID          uuid.UUID      `json:"project_id"`
	CausaJusta         map[string]any `json:"causa_justa,omitempty"`
	TonoDeVoz          map[string]any `json:"tono_de_voz,omitempty"`
	FrameworkNarrativo map[string]any `json:"framework_narrativo,omitempty"`
	FiltroCarlJung     map[string]any `json:"filtro_carl_jung,omitempty"`
	IdeasDeslizar      map[string]any `json:"ideas_deslizar,omitempty"`
	StackPersuasion    map[string]any `json:"stack_persuasion,omitempty"`
}

type Competitor struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	Nombre         string    `json:"nombre"`
	WebURL         string    `json:"web_url,omitempty"`
	Clasificacion  string    `json:"clasificacion,omitempty"`
	PropuestaValor string    `json:"propuesta_valor,omitempty"`
}

// CompetitorStrategy carries the pipeline's free-form strategic analysis. The
// payload arrives as either a JSON object or plain prose.
type CompetitorStrategy struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	Sections  map[string]any `json:"sections"`
	RawText   string         `json:"raw_text,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type AdsAnalysisCompetitor struct {
	Name          string `json:"name" validate:"required"`
	AdsLibraryURL string `json:"ads_library_url" validate:"required,http_url"`
}

type AdsAnalysisRequest struct {
	Competitors []AdsAnalysisCompetitor `json:"competitors" validate:"required,min=3,max=5,dive"`
}

type CompetitorAd struct {
	ID             uuid.UUID      `json:"id"`
	ProjectID      uuid.UUID      `json:"project_id"`
	CompetitorName string         `json:"competitor_name"`
	MediaType      string         `json:"media_type"`
	MediaURL       string         `json:"media_url,omitempty"`
	HookGancho     string         `json:"hook_gancho,omitempty"`
	FullCopy       string         `json:"full_copy,omitempty"`
	Analysis       map[string]any `json:"analysis,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type AdGenerateRequest struct {
	AvatarID             uuid.UUID `json:"avatar_id" validate:"required"`
	FunnelStage          string    `json:"funnel_stage" validate:"required,oneof=TOFU MOFU BOFU"`
	Format               string    `json:"format" validate:"required,oneof=image video carousel"`
	ScriptType           string    `json:"script_type" validate:"script_type"`
	Angle                string    `json:"angle" validate:"required"`
	AngleSource          string    `json:"angle_source"`
	VideoDurationSeconds int       `json:"video_duration_seconds,omitempty"`
	CarouselSlides       int       `json:"carousel_slides,omitempty"`
}

type AdCreation struct {
	ID                   uuid.UUID      `json:"id"`
	ProjectID            uuid.UUID      `json:"project_id"`
	AvatarID             uuid.UUID      `json:"avatar_id"`
	Format               string         `json:"format"`
	FunnelStage          string         `json:"funnel_stage"`
	ScriptType           string         `json:"script_type,omitempty"`
	Angle                string         `json:"angle"`
	AngleSource          string         `json:"angle_source,omitempty"`
	VideoDurationSeconds int            `json:"video_duration_seconds,omitempty"`
	CarouselSlides       int            `json:"carousel_slides,omitempty"`
	Script               map[string]any `json:"script,omitempty"`
	ProfileHeadline      string         `json:"profile_headline,omitempty"`
	Status               string         `json:"status"`
	CreatedAt            time.Time      `json:"created_at"`
}

// MarketContext is the normalized research context (kind context_p1).
type MarketContext struct {
	ResumenEjecutivo      string     `json:"resumen_ejecutivo"`
	EvidenciasYDatos      []Evidence `json:"evidencias_y_datos"`
	DolenciasQueAlivia    []Ailment  `json:"dolencias_que_alivia"`
	InsightsPublicitarios []string   `json:"insights_publicitarios"`
}

type Evidence struct {
	IndicadorEstudio string `json:"indicador_estudio"`
	DatoPorcentaje   string `json:"dato_porcentaje"`
	FuenteEntidad    string `json:"fuente_entidad"`
	URL              string `json:"url,omitempty"`
	Ano              string `json:"ano,omitempty"`
}

type Ailment struct {
	DolorSintoma       string `json:"dolor_sintoma"`
	EvidenciaMecanismo string `json:"evidencia_mecanismo"`
	Fuente             string `json:"fuente"`
	URL                string `json:"url,omitempty"`
}

// SocialContext is the normalized social-listening context (kind context_p2).
type SocialContext struct {
	Dolores    []SocialItem `json:"dolores"`
	Fallos     []SocialItem `json:"fallos"`
	Objeciones []SocialItem `json:"objeciones"`
	TotalItems int          `json:"total_items"`
}

type SocialItem struct {
	Cita   string `json:"cita"`
	URL    string `json:"url,omitempty"`
	Tag    string `json:"tag"`
	Source string `json:"source"`
}

type ProjectContexts struct {
	Market *MarketContext `json:"market,omitempty"`
	Social *SocialContext `json:"social,omitempty"`
}
