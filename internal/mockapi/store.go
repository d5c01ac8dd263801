package mockapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/briefdeck/briefdeck/internal/api"
)

// DefaultAgents is the agent pipeline simulated for a standard prepare job.
var DefaultAgents = []string{
	api.AgentCalendar,
	api.AgentPeople,
	api.AgentTechnical,
	api.AgentSlack,
	api.AgentCoordinator,
}

// Store is the in-memory job store backing the demo server. Each created
// job advances through its agent pipeline on a fixed step interval, landing
// on completed with one sample result per agent.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*jobState
	step time.Duration
}

type jobState struct {
	job     api.Job
	jobType string
	agents  []string
}

// NewStore creates a Store whose simulated jobs advance one agent every
// step.
func NewStore(step time.Duration) *Store {
	if step <= 0 {
		step = time.Second
	}
	return &Store{jobs: make(map[string]*jobState), step: step}
}

// Create registers a new job running the given agents and starts its
// simulation.
func (s *Store) Create(jobType string, agents []string) api.Job {
	if len(agents) == 0 {
		agents = DefaultAgents
	}
	now := time.Now().UTC().Format(time.RFC3339)
	st := &jobState{
		job: api.Job{
			ID:        uuid.NewString(),
			Status:    api.StatusStarted,
			CreatedAt: now,
			UpdatedAt: now,
			Progress: &api.Progress{
				CompletedAgents: []string{},
				TotalAgents:     len(agents),
			},
			Results: map[string]any{},
		},
		jobType: jobType,
		agents:  append([]string(nil), agents...),
	}

	s.mu.Lock()
	s.jobs[st.job.ID] = st
	s.mu.Unlock()

	go s.advance(st.job.ID)
	return snapshotJob(st)
}

// advance steps one job through its agents until completion. It stops
// quietly if the job is deleted mid-run.
func (s *Store) advance(id string) {
	for {
		time.Sleep(s.step)

		s.mu.Lock()
		st, ok := s.jobs[id]
		if !ok {
			s.mu.Unlock()
			return
		}

		done := len(st.job.Progress.CompletedAgents)
		if done >= len(st.agents) {
			st.job.Status = api.StatusCompleted
			st.job.Progress.CurrentAgent = ""
			st.job.Results[api.AgentFinalBriefing] = sampleResult(api.AgentFinalBriefing)
			st.job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			s.mu.Unlock()
			return
		}

		agent := st.agents[done]
		st.job.Status = api.StatusRunning
		st.job.Progress.CurrentAgent = agent
		st.job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.mu.Unlock()

		time.Sleep(s.step)

		s.mu.Lock()
		st, ok = s.jobs[id]
		if !ok {
			s.mu.Unlock()
			return
		}
		st.job.Results[agent] = sampleResult(agent)
		st.job.Progress.CompletedAgents = append(st.job.Progress.CompletedAgents, agent)
		st.job.Progress.CurrentAgent = ""
		st.job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.mu.Unlock()
	}
}

// Get returns a snapshot of one job.
func (s *Store) Get(id string) (api.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.jobs[id]
	if !ok {
		return api.Job{}, false
	}
	return snapshotJob(st), true
}

// List returns summaries for all jobs, keyed by id.
func (s *Store) List() map[string]api.JobSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]api.JobSummary, len(s.jobs))
	for id, st := range s.jobs {
		out[id] = api.JobSummary{
			ID:        st.job.ID,
			Status:    st.job.Status,
			CreatedAt: st.job.CreatedAt,
			UpdatedAt: st.job.UpdatedAt,
			Type:      st.jobType,
		}
	}
	return out
}

// Delete removes a job. Returns false when the id is unknown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// snapshotJob deep-copies the mutable parts so handlers never hand out a
// record the simulation goroutine is still writing to.
func snapshotJob(st *jobState) api.Job {
	job := st.job
	if st.job.Progress != nil {
		p := *st.job.Progress
		p.CompletedAgents = append([]string(nil), st.job.Progress.CompletedAgents...)
		job.Progress = &p
	}
	results := make(map[string]any, len(st.job.Results))
	for k, v := range st.job.Results {
		results[k] = v
	}
	job.Results = results
	return job
}
