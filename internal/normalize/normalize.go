// Package normalize is the single boundary where the pipeline's loosely
// shaped JSON payloads become API types. The pipeline emits objects, arrays,
// or JSON-encoded strings of either, with inconsistent key casing and
// optional wrapper keys. Nothing here returns an error: malformed input
// degrades to empty values so a bad payload never fails a read.
package normalize

import (
	"encoding/json"
	"strings"
)

// parseLoose decodes raw jsonb that may be an object, an array, or a JSON
// string containing either. Returns nil when nothing decodable is left.
func parseLoose(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if looksLikeJSON(trimmed) {
			var inner any
			if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
				return inner
			}
		}
		return s
	}
	return value
}

func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

// DataMap decodes one jsonb column into a map, tolerating JSON-encoded
// strings. Non-object payloads come back nil.
func DataMap(raw []byte) map[string]any {
	return asMap(parseLoose(raw))
}

func asMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func asSlice(value any) []any {
	s, _ := value.([]any)
	return s
}

// stringAt returns the trimmed string under key, or "" when absent or not a
// string.
func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// stringAtFold is stringAt with a case-insensitive key fallback, matching how
// the pipeline sometimes capitalizes demographic keys.
func stringAtFold(m map[string]any, key string) string {
	if s := stringAt(m, key); s != "" {
		return s
	}
	for k := range m {
		if strings.EqualFold(k, key) {
			if s := stringAt(m, k); s != "" {
				return s
			}
		}
	}
	return ""
}
