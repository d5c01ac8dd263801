package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/poller"
	"github.com/briefdeck/briefdeck/internal/render"
)

type stubFetcher struct{}

func (stubFetcher) JobStatus(ctx context.Context, jobID string) (*api.Job, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	w := poller.NewWatcher(poller.New(stubFetcher{}))
	t.Cleanup(w.Stop)
	m := NewModel(w, "job-1")

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return sized.(Model)
}

func applySnapshot(t *testing.T, m Model, snap poller.Snapshot) Model {
	t.Helper()
	next, _ := m.Update(snapshotMsg(snap))
	return next.(Model)
}

func runningJob() *api.Job {
	return &api.Job{
		ID:     "job-1",
		Status: api.StatusRunning,
		Progress: &api.Progress{
			CurrentAgent:    api.AgentPeople,
			CompletedAgents: []string{api.AgentCalendar},
			TotalAgents:     4,
		},
		Results: map[string]any{
			api.AgentCalendar: "```json\n[{\"title\": \"Standup\"}]\n```",
			api.AgentPeople:   []any{map[string]any{"email": "a@example.com"}},
		},
	}
}

func TestModel_SnapshotUpdatesTabs(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, poller.Snapshot{
		JobID: "job-1",
		Job:   runningJob(),
		State: poller.StatePolling,
	})

	// Tabs follow canonical agent order regardless of map iteration.
	require.Equal(t, []string{api.AgentCalendar, api.AgentPeople}, m.tabs)
	require.Contains(t, m.View(), "Calendar")
}

func TestModel_IgnoresStaleSnapshot(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, poller.Snapshot{
		JobID: "job-1",
		Job:   runningJob(),
		State: poller.StatePolling,
	})

	stale := &api.Job{ID: "old-job", Status: api.StatusFailed, Error: "boom"}
	m = applySnapshot(t, m, poller.Snapshot{JobID: "old-job", Job: stale, State: poller.StateStopped})

	require.Equal(t, "job-1", m.Job().ID)
	require.Equal(t, api.StatusRunning, m.Job().Status)
	require.Empty(t, m.Err())
}

func TestModel_TabCycling(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, poller.Snapshot{JobID: "job-1", Job: runningJob(), State: poller.StatePolling})
	require.Equal(t, 0, m.active)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.Equal(t, 1, m.active)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.Equal(t, 0, m.active)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	require.Equal(t, 1, m.active)
}

func TestModel_RawToggleIsPerTab(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, poller.Snapshot{JobID: "job-1", Job: runningJob(), State: poller.StatePolling})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	require.Equal(t, render.ModeRaw, m.modes[api.AgentCalendar])
	require.Equal(t, render.ModeVisual, m.modes[api.AgentPeople])

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	require.Equal(t, render.ModeVisual, m.modes[api.AgentCalendar])
}

func TestModel_FetchErrorShowsInView(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, poller.Snapshot{
		JobID: "job-1",
		Err:   context.DeadlineExceeded,
		State: poller.StateStopped,
	})
	require.NotEmpty(t, m.Err())
	require.Contains(t, m.View(), "error:")
}
