package normalize

import (
	"fmt"
	"regexp"
	"strings"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

var genericAvatarName = regexp.MustCompile(`(?i)^avatar\s*\d+$`)

// Avatar flattens the raw pipeline profile into the API shape. Demographics
// are looked up under several keys because the pipeline has used different
// spellings across versions.
func Avatar(avatar model.Avatar) api.Avatar {
	profile := asMap(parseLoose(avatar.Profile))
	data := asMap(profile["data"])

	description := stringAt(profile, "headline")
	if description == "" {
		description = "Sin descripción."
	}

	return api.Avatar{
		ID:          avatar.ID,
		ProjectID:   avatar.ProjectID,
		Slot:        avatar.Slot,
		Name:        avatarDisplayName(profile, data, avatar),
		Description: description,
		Age:         firstValue(data, "rango_edad", "edad", "age", "years", "rango_de_edad"),
		Gender:      firstValue(data, "sexo", "genero", "gender", "sex"),
		Income:      firstValue(data, "nivel_ingresos", "ingresos", "income", "nse", "nivel_socioeconomico"),
		Data:        data,
	}
}

func firstValue(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := stringAtFold(data, key); value != "" {
			return value
		}
	}
	return ""
}

// avatarDisplayName picks the first usable name. Profile names that are just
// "Avatar N" are placeholders the pipeline echoes back, so they lose to the
// stored etiqueta.
func avatarDisplayName(profile, data map[string]any, avatar model.Avatar) string {
	candidates := []string{
		stringAt(data, "nombre"),
		stringAt(profile, "nombre"),
		stringAt(data, "name"),
		stringAt(profile, "name"),
	}
	for _, candidate := range candidates {
		if candidate != "" && !genericAvatarName.MatchString(candidate) {
			return candidate
		}
	}
	if avatar.Etiqueta != nil {
		if etiqueta := strings.TrimSpace(*avatar.Etiqueta); etiqueta != "" {
			return etiqueta
		}
	}
	return fmt.Sprintf("Avatar %d", avatar.Slot)
}
