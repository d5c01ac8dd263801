package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalendar_ConventionMerge(t *testing.T) {
	// Both conventions in one record: the human-labeled fields win.
	raw := map[string]any{
		"Event Summary":       "Standup",
		"Start Date and Time": "2025-03-10 09:00",
		"title":               "ignored",
		"startTime":           "ignored",
		"attendees":           []any{"a@example.com"},
	}

	events := Calendar(raw)
	require.Len(t, events, 1)
	require.Equal(t, "Standup", events[0].Summary)
	require.Equal(t, "2025-03-10 09:00", events[0].Start.DateTime)
	require.Len(t, events[0].Attendees, 1)
	require.Equal(t, "a@example.com", events[0].Attendees[0].Email)
	require.Equal(t, "needsAction", events[0].Attendees[0].ResponseStatus)
}

func TestCalendar_Shapes(t *testing.T) {
	t.Run("array of programmatic events", func(t *testing.T) {
		events := Calendar([]any{
			map[string]any{
				"title":     "Design review",
				"startTime": "2025-03-10T14:00:00Z",
				"endTime":   "2025-03-10T15:00:00Z",
				"meetLink":  "https://meet.example/abc",
				"status":    "confirmed",
			},
		})
		require.Len(t, events, 1)
		require.Equal(t, "Design review", events[0].Summary)
		require.Equal(t, "2025-03-10T15:00:00Z", events[0].End.DateTime)
		require.Equal(t, "https://meet.example/abc", events[0].JoinLink)
		require.Equal(t, "confirmed", events[0].Status)
	})

	t.Run("meetings wrapper object", func(t *testing.T) {
		events := Calendar(map[string]any{
			"meetings": []any{
				map[string]any{"title": "One"},
				map[string]any{"title": "Two"},
			},
		})
		require.Len(t, events, 2)
	})

	t.Run("fenced json string", func(t *testing.T) {
		events := Calendar("```json\n[{\"title\": \"Sync\", \"startTime\": \"2025-03-11\"}]\n```")
		require.Len(t, events, 1)
		require.Equal(t, "Sync", events[0].Summary)
	})

	t.Run("structured start and end objects", func(t *testing.T) {
		events := Calendar(map[string]any{
			"summary": "Offsite",
			"start":   map[string]any{"dateTime": "2025-03-12T09:00:00", "timeZone": "Europe/London"},
			"end":     map[string]any{"dateTime": "2025-03-12T17:00:00", "timeZone": "Europe/London"},
		})
		require.Len(t, events, 1)
		require.Equal(t, "2025-03-12T09:00:00", events[0].Start.DateTime)
		require.Equal(t, "Europe/London", events[0].Start.TimeZone)
	})

	t.Run("attendee objects with defaults", func(t *testing.T) {
		events := Calendar(map[string]any{
			"title": "1:1",
			"attendees": []any{
				map[string]any{"email": "lead@example.com", "responseStatus": "accepted", "organizer": true},
				map[string]any{"displayName": "Guest"},
			},
		})
		require.Len(t, events, 1)
		att := events[0].Attendees
		require.Len(t, att, 2)
		require.Equal(t, "accepted", att[0].ResponseStatus)
		require.True(t, att[0].Organizer)
		require.Equal(t, "needsAction", att[1].ResponseStatus)
		require.Equal(t, "Guest", att[1].DisplayName)
	})
}

func TestCalendar_TextFallback(t *testing.T) {
	text := `Here are the upcoming meetings:

**Meeting 1:**
- Title: Sprint planning
- Date: 2025-03-10
- Time: 09:00 - 10:00
- Attendees: alice@example.com, bob@example.com

**Meeting 2:**
- Title: Retro
- Date: 2025-03-14
- Time: 16:00
`

	events := Calendar(text)
	require.Len(t, events, 2)

	require.Equal(t, "Sprint planning", events[0].Summary)
	require.Equal(t, "2025-03-10 09:00", events[0].Start.DateTime)
	require.Equal(t, "2025-03-10 10:00", events[0].End.DateTime)
	require.Len(t, events[0].Attendees, 2)

	require.Equal(t, "Retro", events[1].Summary)
	require.Equal(t, "2025-03-14 16:00", events[1].Start.DateTime)
	require.Empty(t, events[1].End.DateTime)
}

func TestCalendar_Totality(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"prose without meeting blocks", "nothing on the calendar today"},
		{"truncated json", `[{"title": "x"`},
		{"object with no recognized fields", map[string]any{"foo": "bar"}},
		{"array of scalars", []any{1, 2, 3}},
		{"meeting block with no title or date", "**Meeting 1:**\n- Attendees: a@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				events := Calendar(tt.raw)
				require.NotNil(t, events)
				require.Empty(t, events)
			})
		})
	}
}
