package normalize

import (
	"strings"

	"github.com/briefdeck/briefdeck/internal/rawval"
)

// TeamComms normalizes team-communication (Slack) agent output. Structured
// payloads pass through as sections; anything else becomes a single text
// section. A payload that only states "No information available" is an
// empty result for display purposes.
func TeamComms(raw any) []ContextSection {
	v := rawval.Resolve(raw)
	switch v.Kind {
	case rawval.Object:
		return objectSections(v.Obj)
	case rawval.Array:
		return []ContextSection{{Content: v.String()}}
	case rawval.Text:
		if isNoInformation(v.Text) {
			return []ContextSection{}
		}
		return []ContextSection{{Content: v.Text}}
	default:
		return []ContextSection{}
	}
}

func isNoInformation(s string) bool {
	s = strings.ToLower(strings.TrimRight(strings.TrimSpace(s), "."))
	return s == "no information available"
}
