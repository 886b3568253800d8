package normalize

import (
	"strings"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

// Strategy turns the analisis_final_ia column into the API shape. The column
// has shipped as a JSON object, a JSON object wrapped in an output key, and
// plain prose; an object populates Sections, anything else lands in RawText.
func Strategy(strategy model.CompetitorStrategy) api.CompetitorStrategy {
	result := api.CompetitorStrategy{
		ID:        strategy.ID,
		ProjectID: strategy.ProjectID,
		CreatedAt: strategy.CreatedAt,
	}

	parsed := parseLoose(strategy.AnalisisFinalIA)
	switch value := parsed.(type) {
	case map[string]any:
		if inner := asMap(value["output"]); inner != nil {
			value = inner
		}
		result.Sections = value
	case string:
		result.RawText = strings.TrimSpace(value)
	}
	return result
}
