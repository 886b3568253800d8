package validator

import (
	"net/url"
	"strings"

	api "github.com/made-to-scale/scaleops/api/v1"
)

// BriefValidation reports which questionnaire fields still block submission.
type BriefValidation struct {
	OK      bool
	Missing []string
}

var briefRequiredFields = []struct {
	name  string
	value func(p *api.BriefPayload) string
}{
	{"nombre_comercial", func(p *api.BriefPayload) string { return p.NombreComercial }},
	{"nombre_interno", func(p *api.BriefPayload) string { return p.NombreInterno }},
	{"mision_empresa", func(p *api.BriefPayload) string { return p.MisionEmpresa }},
	{"vision_empresa", func(p *api.BriefPayload) string { return p.VisionEmpresa }},
	{"tipo_oferta", func(p *api.BriefPayload) string { return p.TipoOferta }},
	{"sector", func(p *api.BriefPayload) string { return p.Sector }},
	{"propuesta_valor_promesa", func(p *api.BriefPayload) string { return p.PropuestaValorPromesa }},
	{"segmento_cliente_objetivo", func(p *api.BriefPayload) string { return p.SegmentoClienteObjetivo }},
	{"problema_principal_resuelve", func(p *api.BriefPayload) string { return p.ProblemaPrincipalResuelve }},
	{"personas_experimentan_problema", func(p *api.BriefPayload) string { return p.PersonasExperimentanProblema }},
	{"transformacion_deseada", func(p *api.BriefPayload) string { return p.TransformacionDeseada }},
	{"pais_objetivo", func(p *api.BriefPayload) string { return p.PaisObjetivo }},
	{"precio_aprox", func(p *api.BriefPayload) string { return p.PrecioAprox }},
	{"objetivo_proyecto", func(p *api.BriefPayload) string { return p.ObjetivoProyecto }},
	{"tema_clave", func(p *api.BriefPayload) string { return p.TemaClave }},
	{"tiene_limites_comunicacion", func(p *api.BriefPayload) string { return p.TieneLimitesComunicacion }},
}

// ValidateBriefPayload applies the questionnaire rules: sixteen required
// fields where whitespace-only counts as empty, details required when
// communication limits are declared, and url_producto optional but a real
// URL when present. The chips arrays (competidores_relevantes,
// referentes_inspiracion) are always optional.
func ValidateBriefPayload(payload *api.BriefPayload) BriefValidation {
	missing := []string{}
	for _, field := range briefRequiredFields {
		if strings.TrimSpace(field.value(payload)) == "" {
			missing = append(missing, field.name)
		}
	}

	if payload.TieneLimitesComunicacion == "si" && strings.TrimSpace(payload.DetallesLimitesComunicacion) == "" {
		missing = append(missing, "detalles_limites_comunicacion")
	}

	if payload.URLProducto != "" && !isValidURL(payload.URLProducto) {
		missing = append(missing, "url_producto")
	}

	return BriefValidation{OK: len(missing) == 0, Missing: missing}
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
