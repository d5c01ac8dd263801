package normalize

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/briefdeck/briefdeck/internal/rawval"
)

// Preread normalizes pre-read document agent output. Same two-path shape as
// Agenda: an object with a "preread_packet" key, or an already-flat packet
// object, either possibly JSON-encoded in a string. ok is false when the
// payload carries no "documents" field.
func Preread(raw any) (PrereadPacket, bool) {
	v := rawval.Resolve(raw)
	if v.Kind != rawval.Object {
		return PrereadPacket{}, false
	}

	obj := v.Obj
	if inner, found := obj["preread_packet"].(map[string]any); found {
		obj = inner
	}
	if _, found := obj["documents"]; !found {
		return PrereadPacket{}, false
	}

	var rec struct {
		MeetingTitle string `mapstructure:"meeting_title"`
		Summary      string `mapstructure:"summary"`
		Documents    []struct {
			Title          string   `mapstructure:"title"`
			Source         string   `mapstructure:"source"`
			Type           string   `mapstructure:"type"`
			RelevanceScore float64  `mapstructure:"relevance_score"`
			Summary        string   `mapstructure:"summary"`
			KeyPoints      []string `mapstructure:"key_points"`
			Link           string   `mapstructure:"link"`
			LastUpdated    string   `mapstructure:"last_updated"`
		} `mapstructure:"documents"`
		ActionItems []string `mapstructure:"action_items"`
	}
	if err := mapstructure.Decode(obj, &rec); err != nil {
		return PrereadPacket{}, false
	}

	packet := PrereadPacket{
		MeetingTitle: rec.MeetingTitle,
		Summary:      rec.Summary,
		Documents:    make([]PrereadDocument, 0, len(rec.Documents)),
		ActionItems:  rec.ActionItems,
	}
	for _, d := range rec.Documents {
		packet.Documents = append(packet.Documents, PrereadDocument{
			Title:          d.Title,
			Source:         d.Source,
			Type:           d.Type,
			RelevanceScore: d.RelevanceScore,
			Summary:        d.Summary,
			KeyPoints:      d.KeyPoints,
			Link:           d.Link,
			LastUpdated:    d.LastUpdated,
		})
	}
	return packet, true
}
