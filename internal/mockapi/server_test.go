package mockapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/briefdeck/briefdeck/internal/api"
)

func TestMockBackend_JobLifecycle(t *testing.T) {
	srv := httptest.NewServer(NewHandler(5 * time.Millisecond))
	defer srv.Close()

	client := api.New(srv.URL)
	ctx := context.Background()

	h, err := client.Health(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", h.Status)
	require.Equal(t, Version, h.Version)

	resp, err := client.PrepareMeeting(ctx, api.PrepareRequest{
		IncludeSlack:  true,
		IncludeAgenda: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.JobID)

	// The simulation runs on a short step; wait for completion.
	var job *api.Job
	require.Eventually(t, func() bool {
		job, err = client.JobStatus(ctx, resp.JobID)
		require.NoError(t, err)
		return job.Status == api.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	// Every simulated agent left a result behind, plus the final briefing.
	for _, key := range append(DefaultAgents, api.AgentAgenda, api.AgentFinalBriefing) {
		require.Contains(t, job.Results, key)
	}
	require.Equal(t, job.Progress.TotalAgents, len(job.Progress.CompletedAgents))

	jobs, err := client.ListJobs(ctx)
	require.NoError(t, err)
	require.Contains(t, jobs, resp.JobID)
	require.Equal(t, "standard", jobs[resp.JobID].Type)

	require.NoError(t, client.DeleteJob(ctx, resp.JobID))
	_, err = client.JobStatus(ctx, resp.JobID)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.StatusCode)
}

func TestMockBackend_CustomAgents(t *testing.T) {
	srv := httptest.NewServer(NewHandler(time.Millisecond))
	defer srv.Close()

	client := api.New(srv.URL)
	ctx := context.Background()

	t.Run("runs only the requested agents", func(t *testing.T) {
		resp, err := client.PrepareCustom(ctx, api.CustomPrepareRequest{
			Agents: []string{api.AgentCalendar},
		})
		require.NoError(t, err)

		var job *api.Job
		require.Eventually(t, func() bool {
			job, err = client.JobStatus(ctx, resp.JobID)
			require.NoError(t, err)
			return job.Status == api.StatusCompleted
		}, 5*time.Second, 5*time.Millisecond)

		require.Contains(t, job.Results, api.AgentCalendar)
		require.NotContains(t, job.Results, api.AgentPeople)
	})

	t.Run("rejects an empty agent list", func(t *testing.T) {
		_, err := client.PrepareCustom(ctx, api.CustomPrepareRequest{})
		var apiErr *api.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 400, apiErr.StatusCode)
		require.Contains(t, apiErr.Message, "at least one agent")
	})
}

func TestSampleResults_Normalize(t *testing.T) {
	// The demo payloads must exercise the real shape variety: each one has
	// to survive the corresponding normalizer.
	t.Run("calendar sample is fenced json", func(t *testing.T) {
		raw, ok := sampleResult(api.AgentCalendar).(string)
		require.True(t, ok)
		require.Contains(t, raw, "```json")
	})

	t.Run("agenda sample carries agenda items", func(t *testing.T) {
		obj, ok := sampleResult(api.AgentAgenda).(map[string]any)
		require.True(t, ok)
		require.Contains(t, obj, "agenda")
	})

	t.Run("unknown agent gets the no-information sentinel", func(t *testing.T) {
		require.Equal(t, "No information available", sampleResult("made_up_agent"))
	})
}
