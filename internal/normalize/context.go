package normalize

import (
	api "github.com/made-to-scale/scaleops/api/v1"
)

// MarketContext extracts the market research context (kind context_p1). The
// payload may nest everything under a p1_contexto key or sit flat at the
// root.
func MarketContext(content []byte) *api.MarketContext {
	parsed := asMap(parseLoose(content))
	if parsed == nil {
		return nil
	}
	root := parsed
	if inner := asMap(parsed["p1_contexto"]); inner != nil {
		root = inner
	}

	context := api.MarketContext{
		ResumenEjecutivo:      stringAt(root, "ResumenEjecutivo"),
		EvidenciasYDatos:      []api.Evidence{},
		DolenciasQueAlivia:    []api.Ailment{},
		InsightsPublicitarios: []string{},
	}
	for _, item := range asSlice(root["EvidenciasYDatos"]) {
		evidence := asMap(item)
		context.EvidenciasYDatos = append(context.EvidenciasYDatos, api.Evidence{
			IndicadorEstudio: stringAt(evidence, "IndicadorEstudio"),
			DatoPorcentaje:   stringAt(evidence, "DatoPorcentaje"),
			FuenteEntidad:    stringAt(evidence, "FuenteEntidad"),
			URL:              stringAt(evidence, "URL"),
			Ano:              stringAt(evidence, "Ano"),
		})
	}
	for _, item := range asSlice(root["DolenciasQueAlivia"]) {
		ailment := asMap(item)
		context.DolenciasQueAlivia = append(context.DolenciasQueAlivia, api.Ailment{
			DolorSintoma:       stringAt(ailment, "DolorSintoma"),
			EvidenciaMecanismo: stringAt(ailment, "EvidenciaMecanismo"),
			Fuente:             stringAt(ailment, "Fuente"),
			URL:                stringAt(ailment, "URL"),
		})
	}
	for _, item := range asSlice(root["InsightsPublicitarios"]) {
		if insight, ok := item.(string); ok {
			context.InsightsPublicitarios = append(context.InsightsPublicitarios, insight)
		}
	}
	return &context
}

// SocialContext extracts the social listening context (kind context_p2). The
// three cazador_* arrays carry different field names per kind; they are
// mapped onto the shared tag/source shape here.
func SocialContext(content []byte) *api.SocialContext {
	parsed := asMap(parseLoose(content))
	if parsed == nil {
		return nil
	}
	root := parsed
	if inner := asMap(parsed["p2_contexto"]); inner != nil {
		root = inner
	}

	context := api.SocialContext{
		Dolores:    []api.SocialItem{},
		Fallos:     []api.SocialItem{},
		Objeciones: []api.SocialItem{},
	}
	for _, item := range asSlice(root["cazador_dolor"]) {
		entry := asMap(item)
		context.Dolores = append(context.Dolores, api.SocialItem{
			Cita:   stringAt(entry, "cita"),
			URL:    stringAt(entry, "url"),
			Tag:    fallback(stringAt(entry, "dolor_validado"), "Dolor validado"),
			Source: fallback(stringAt(entry, "fuente"), "Fuente externa"),
		})
	}
	for _, item := range asSlice(root["cazador_fallos"]) {
		entry := asMap(item)
		context.Fallos = append(context.Fallos, api.SocialItem{
			Cita:   stringAt(entry, "cita"),
			URL:    stringAt(entry, "url"),
			Tag:    fallback(stringAt(entry, "motivo_fallo"), "Fallo detectado"),
			Source: fallback(stringAt(entry, "producto_criticado"), "Producto competencia"),
		})
	}
	for _, item := range asSlice(root["cazador_objeciones"]) {
		entry := asMap(item)
		cita := stringAt(entry, "duda_textual")
		if cita == "" {
			cita = stringAt(entry, "cita")
		}
		tag := stringAt(entry, "freno_mental")
		if tag == "" {
			tag = stringAt(entry, "objecion_validada")
		}
		context.Objeciones = append(context.Objeciones, api.SocialItem{
			Cita:   cita,
			URL:    stringAt(entry, "url"),
			Tag:    fallback(tag, "Objeción"),
			Source: fallback(stringAt(entry, "fuente"), "Fuente externa"),
		})
	}
	context.TotalItems = len(context.Dolores) + len(context.Fallos) + len(context.Objeciones)
	return &context
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
