package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/briefdeck/briefdeck/internal/api"
)

func TestConfig(t *testing.T) {
	t.Run("known keys have fixed labels", func(t *testing.T) {
		require.Equal(t, "Calendar", Config(api.AgentCalendar).Label)
		require.Equal(t, "Final Briefing", Config(api.AgentFinalBriefing).Label)
	})

	t.Run("unknown keys get a humanized label", func(t *testing.T) {
		cfg := Config("risk_assessment")
		require.Equal(t, "Risk Assessment", cfg.Label)
		require.Equal(t, "risk_assessment", cfg.Key)
	})
}

func TestModeToggle(t *testing.T) {
	require.Equal(t, ModeRaw, ModeVisual.Toggle())
	require.Equal(t, ModeVisual, ModeRaw.Toggle())
}

func TestRender_Visual(t *testing.T) {
	t.Run("calendar events", func(t *testing.T) {
		out := Render(api.AgentCalendar, map[string]any{
			"title":     "Standup",
			"startTime": "2025-09-02T09:00:00",
			"attendees": []any{"a@example.com"},
		}, ModeVisual, 80)
		require.Contains(t, out, "Standup")
		require.Contains(t, out, "2025-09-02T09:00:00")
		require.Contains(t, out, "a@example.com")
	})

	t.Run("calendar with no meetings", func(t *testing.T) {
		out := Render(api.AgentCalendar, "nothing scheduled", ModeVisual, 80)
		require.Contains(t, out, "no meetings found")
	})

	t.Run("people profiles", func(t *testing.T) {
		out := Render(api.AgentPeople, []any{
			map[string]any{"email": "alice@example.com", "name": "Alice", "role": "Engineer"},
		}, ModeVisual, 80)
		require.Contains(t, out, "Alice")
		require.Contains(t, out, "Engineer")
	})

	t.Run("empty agenda object reports no data", func(t *testing.T) {
		out := Render(api.AgentAgenda, map[string]any{}, ModeVisual, 80)
		require.Contains(t, out, "no agenda data")
	})

	t.Run("agenda items are numbered with priority badges", func(t *testing.T) {
		out := Render(api.AgentAgenda, map[string]any{
			"agenda_items": []any{
				map[string]any{"title": "Blockers", "priority": "high"},
			},
		}, ModeVisual, 80)
		require.Contains(t, out, "1.")
		require.Contains(t, out, "Blockers")
		require.Contains(t, out, "[High]")
	})

	t.Run("preread documents show relevance", func(t *testing.T) {
		out := Render(api.AgentPreread, map[string]any{
			"documents": []any{
				map[string]any{"title": "Spec", "relevance_score": float64(8)},
			},
		}, ModeVisual, 80)
		require.Contains(t, out, "Spec")
		require.Contains(t, out, "[8/10]")
	})

	t.Run("final briefing renders as raw text", func(t *testing.T) {
		out := Render(api.AgentFinalBriefing, "ready to go", ModeVisual, 80)
		require.Equal(t, "ready to go", out)
	})

	t.Run("unknown key falls back to raw", func(t *testing.T) {
		out := Render("mystery", `{"a": 1}`, ModeVisual, 80)
		require.Contains(t, out, `"a": 1`)
	})
}

func TestRender_Raw(t *testing.T) {
	t.Run("raw mode shows the payload regardless of key", func(t *testing.T) {
		out := Render(api.AgentCalendar, "```json\n[{\"title\": \"x\"}]\n```", ModeRaw, 80)
		require.Contains(t, out, `"title": "x"`)
		require.NotContains(t, out, "```")
	})

	t.Run("nil payload is no data", func(t *testing.T) {
		out := Render(api.AgentCalendar, nil, ModeRaw, 80)
		require.Contains(t, out, "no data")
	})
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	out := Truncate("a very long line that should be cut", 10)
	require.True(t, strings.HasSuffix(out, "…"))
	// Double-width runes count as two cells.
	require.Equal(t, "日本", Truncate("日本", 4))
	require.Equal(t, "日…", Truncate("日本語", 4))
}
