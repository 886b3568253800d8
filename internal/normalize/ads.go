package normalize

import (
	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

// CompetitorAd resolves the display name for one scraped creative. The
// pipeline writes competitor_id for some creatives and only a free-form name
// for others.
func CompetitorAd(ad model.CompetitorAd, names map[uuid.UUID]string) api.CompetitorAd {
	name := ad.CompetitorName
	if ad.CompetitorID != nil {
		if resolved, ok := names[*ad.CompetitorID]; ok && resolved != "" {
			name = resolved
		}
	}
	if name == "" {
		name = "Competidor"
	}
	mediaType := ad.MediaType
	if mediaType == "" {
		mediaType = "image"
	}
	return api.CompetitorAd{
		ID:             ad.ID,
		ProjectID:      ad.ProjectID,
		CompetitorName: name,
		MediaType:      mediaType,
		MediaURL:       ad.MediaURL,
		HookGancho:     ad.HookGancho,
		FullCopy:       ad.FullCopy,
		Analysis:       asMap(parseLoose(ad.Analysis)),
		CreatedAt:      ad.CreatedAt,
	}
}

// AdsAnalysisText extracts the consolidated ads commentary, which ships as
// either a JSON-encoded string or plain text.
func AdsAnalysisText(raw []byte) string {
	switch value := parseLoose(raw).(type) {
	case string:
		return value
	case map[string]any:
		return stringAt(value, "output")
	}
	return ""
}
