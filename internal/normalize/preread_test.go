package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreread(t *testing.T) {
	t.Run("wrapped packet", func(t *testing.T) {
		packet, ok := Preread(map[string]any{
			"preread_packet": map[string]any{
				"meeting_title": "Incident review",
				"summary":       "Read before the meeting.",
				"documents": []any{
					map[string]any{
						"title":           "Postmortem draft",
						"source":          "Drive",
						"type":            "doc",
						"relevance_score": float64(8),
						"key_points":      []any{"timeline", "root cause"},
						"link":            "https://docs.example/pm",
					},
				},
				"action_items": []any{"Skim the timeline"},
			},
		})
		require.True(t, ok)
		require.Equal(t, "Incident review", packet.MeetingTitle)
		require.Len(t, packet.Documents, 1)
		require.Equal(t, 8.0, packet.Documents[0].RelevanceScore)
		require.Equal(t, []string{"timeline", "root cause"}, packet.Documents[0].KeyPoints)
		require.Equal(t, []string{"Skim the timeline"}, packet.ActionItems)
	})

	t.Run("flat packet in a json string", func(t *testing.T) {
		packet, ok := Preread(`{"documents": [{"title": "Spec", "relevance_score": 9.5}]}`)
		require.True(t, ok)
		require.Len(t, packet.Documents, 1)
		require.Equal(t, 9.5, packet.Documents[0].RelevanceScore)
	})

	t.Run("missing documents is no data", func(t *testing.T) {
		_, ok := Preread(map[string]any{"meeting_title": "x"})
		require.False(t, ok)
	})

	t.Run("non-object payloads are no data", func(t *testing.T) {
		for _, raw := range []any{nil, "", "no documents found", []any{}} {
			_, ok := Preread(raw)
			require.False(t, ok)
		}
	})
}
