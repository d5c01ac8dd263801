package api

// Status is the lifecycle state a job reports from the backend.
type Status string

const (
	StatusStarted   Status = "started"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ParseStatus maps a raw backend status string to a Status. Anything outside
// the four recognized values is coerced to StatusFailed so an unrecognized
// status can never keep a polling loop alive.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusStarted, StatusRunning, StatusCompleted, StatusFailed:
		return Status(s)
	default:
		return StatusFailed
	}
}

// Terminal reports whether the status ends a job's lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Agent keys that may appear in a job's results map.
const (
	AgentCalendar      = "calendar"
	AgentPeople        = "people_research"
	AgentTechnical     = "technical_context"
	AgentSlack         = "slack_context"
	AgentCoordinator   = "coordinator"
	AgentAgenda        = "agenda"
	AgentPreread       = "preread_documents"
	AgentFinalBriefing = "final_briefing"
)

// AgentKeys lists the recognized result keys in their display order.
var AgentKeys = []string{
	AgentCalendar,
	AgentPeople,
	AgentTechnical,
	AgentSlack,
	AgentAgenda,
	AgentPreread,
	AgentCoordinator,
	AgentFinalBriefing,
}

// Progress tracks how far a job's agent pipeline has advanced.
type Progress struct {
	CurrentAgent    string   `json:"current_agent,omitempty"`
	CompletedAgents []string `json:"completed_agents"`
	TotalAgents     int      `json:"total_agents"`
}

// Percent returns completion as an integer percentage clamped to [0, 100].
func (p *Progress) Percent() int {
	if p == nil || p.TotalAgents <= 0 {
		return 0
	}
	pct := len(p.CompletedAgents) * 100 / p.TotalAgents
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Job is the client-side, eventually-stale copy of one meeting-preparation
// job. The per-agent entries in Results are untyped on purpose: the backend
// is free to return the same logical result as a JSON object, a JSON-encoded
// string, markdown-wrapped JSON, or prose. Shape resolution happens at
// consumption time, in the normalize package.
type Job struct {
	ID        string         `json:"job_id"`
	Status    Status         `json:"status"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	Progress  *Progress      `json:"progress,omitempty"`
	Results   map[string]any `json:"results,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// JobSummary is one entry in the job listing endpoint.
type JobSummary struct {
	ID        string         `json:"job_id"`
	Status    Status         `json:"status"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	Progress  map[string]any `json:"progress,omitempty"`
	Type      string         `json:"type,omitempty"`
}

// PrepareRequest is the body for the standard prepare endpoint.
type PrepareRequest struct {
	MeetingContext  string         `json:"meeting_context,omitempty"`
	IncludeSlack    bool           `json:"include_slack"`
	IncludeAgenda   bool           `json:"include_agenda"`
	FocusMode       string         `json:"focus_mode,omitempty"`
	UserPreferences map[string]any `json:"user_preferences,omitempty"`
}

// CustomPrepareRequest is the body for the custom-agent prepare endpoint.
type CustomPrepareRequest struct {
	Agents         []string       `json:"agents"`
	MeetingContext string         `json:"meeting_context,omitempty"`
	CalendarData   map[string]any `json:"calendar_data,omitempty"`
	PeopleData     map[string]any `json:"people_data,omitempty"`
	TechnicalData  map[string]any `json:"technical_data,omitempty"`
	SlackData      map[string]any `json:"slack_data,omitempty"`
}

// AgendaPrepareRequest is the body for the agenda-only prepare endpoint.
type AgendaPrepareRequest struct {
	MeetingContext   map[string]any    `json:"meeting_context"`
	FocusMode        string            `json:"focus_mode,omitempty"`
	ParticipantRoles map[string]string `json:"participant_roles,omitempty"`
}

// PrepareResponse acknowledges a submitted job.
type PrepareResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health is the backend liveness response.
type Health struct {
	Status          string `json:"status"`
	PortiaAvailable bool   `json:"portia_available"`
	Environment     string `json:"environment"`
	Timestamp       string `json:"timestamp"`
	Version         string `json:"version"`
}

// DeleteResponse acknowledges a job deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// FocusModes lists the focus modes accepted by the prepare endpoints.
var FocusModes = []string{"balanced", "blockers", "design", "progress", "planning"}
