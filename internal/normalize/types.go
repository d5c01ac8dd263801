package normalize

// Attendee is one participant on a calendar event.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus"`
	Organizer      bool   `json:"organizer,omitempty"`
	Optional       bool   `json:"optional,omitempty"`
	Self           bool   `json:"self,omitempty"`
}

// DefaultResponseStatus is filled in when an attendee record carries no
// response status of its own.
const DefaultResponseStatus = "needsAction"

// EventTime is an instant plus its zone. DateTime is kept as the backend's
// string form; this layer normalizes shape, not semantics.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// CalendarEvent is one normalized calendar entry.
type CalendarEvent struct {
	Summary   string     `json:"summary"`
	Start     EventTime  `json:"start"`
	End       EventTime  `json:"end"`
	Attendees []Attendee `json:"attendees,omitempty"`
	JoinLink  string     `json:"joinLink,omitempty"`
	Status    string     `json:"status,omitempty"`
}

// AttendeeProfile is the research record for one meeting participant.
type AttendeeProfile struct {
	Email         string   `json:"email"`
	Name          string   `json:"name,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
	Background    string   `json:"background,omitempty"`
	Expertise     string   `json:"expertise,omitempty"`
	Context       string   `json:"context,omitempty"`
	Websites      []string `json:"websites,omitempty"`
}

// Agenda item priorities. Records missing a priority get PriorityMedium.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// AgendaItem is one entry in a generated agenda.
type AgendaItem struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Priority       string `json:"priority"`
	TimeAllocation string `json:"time_allocation,omitempty"`
	Context        string `json:"context,omitempty"`
}

// AgendaDocument groups the agenda items for one meeting.
type AgendaDocument struct {
	MeetingTitle      string       `json:"meeting_title,omitempty"`
	EstimatedDuration string       `json:"estimated_duration,omitempty"`
	FocusMode         string       `json:"focus_mode,omitempty"`
	Items             []AgendaItem `json:"agenda_items"`
}

// PrereadDocument is one suggested pre-read.
type PrereadDocument struct {
	Title          string   `json:"title"`
	Source         string   `json:"source,omitempty"`
	Type           string   `json:"type,omitempty"`
	RelevanceScore float64  `json:"relevance_score"`
	Summary        string   `json:"summary,omitempty"`
	KeyPoints      []string `json:"key_points,omitempty"`
	Link           string   `json:"link,omitempty"`
	LastUpdated    string   `json:"last_updated,omitempty"`
}

// PrereadPacket groups the pre-read documents for one meeting.
type PrereadPacket struct {
	MeetingTitle string            `json:"meeting_title,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	Documents    []PrereadDocument `json:"documents"`
	ActionItems  []string          `json:"action_items,omitempty"`
}

// ContextSection is one titled chunk of technical or team-communication
// context. Title may be empty when the source text had no headings.
type ContextSection struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}
