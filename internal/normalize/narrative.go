package normalize

import (
	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

// Narrative decodes each storytelling column. Columns are independent; one
// malformed column does not affect the rest.
func Narrative(narrative model.Narrative) api.Narrative {
	return api.Narrative{
		ID:                 narrative.ID,
		ProjectID:          narrative.ProjectID,
		CausaJusta:         asMap(parseLoose(narrative.CausaJusta)),
		TonoDeVoz:          asMap(parseLoose(narrative.TonoDeVoz)),
		FrameworkNarrativo: asMap(parseLoose(narrative.FrameworkNarrativo)),
		FiltroCarlJung:     unwrapSingle(asMap(parseLoose(narrative.FiltroCarlJung)), "FILTRO_ARQUETIPOS"),
		IdeasDeslizar:      asMap(parseLoose(narrative.IdeasDeslizar)),
		StackPersuasion:    PersuasionStack(narrative.StackPersuasion),
	}
}

// PersuasionStack unwraps the stack column. The pipeline has nested the
// payload under STACK_PERSUASION_MARCA, stack_persuasion (sometimes with
// STACK_PERSUASION_MARCA inside), and STACK_PERSUASION across versions.
func PersuasionStack(raw []byte) map[string]any {
	content := asMap(parseLoose(raw))
	if content == nil {
		return nil
	}
	if inner := asMap(content["STACK_PERSUASION_MARCA"]); inner != nil {
		return inner
	}
	if wrapped := asMap(content["stack_persuasion"]); wrapped != nil {
		if inner := asMap(wrapped["STACK_PERSUASION_MARCA"]); inner != nil {
			return inner
		}
		return wrapped
	}
	if inner := asMap(content["STACK_PERSUASION"]); inner != nil {
		return inner
	}
	return content
}

func unwrapSingle(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if inner := asMap(m[key]); inner != nil {
		return inner
	}
	return m
}
