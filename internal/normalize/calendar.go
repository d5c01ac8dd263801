// Package normalize maps the loosely-typed payloads agents return into
// fixed, fully-defaulted domain records. Every transformer here is a pure,
// total function: whatever the input shape (native object or array, JSON
// hidden in a string, or plain prose) the worst case is an empty record,
// never an error.
package normalize

import (
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/briefdeck/briefdeck/internal/rawval"
)

// calendarRecord covers both field conventions observed in calendar agent
// output: the human-labeled form ("Event Summary", "Start Date and Time")
// and the programmatic form (title/startTime/attendees). Both decode into
// one record and merge field by field, with the human-labeled value winning
// when a field is present in both.
type calendarRecord struct {
	EventSummary   any    `mapstructure:"Event Summary"`
	StartLabeled   any    `mapstructure:"Start Date and Time"`
	EndLabeled     any    `mapstructure:"End Date and Time"`
	AttendeesUpper any    `mapstructure:"Attendees"`
	MeetingLink    string `mapstructure:"Meeting Link"`
	EventStatus    string `mapstructure:"Event Status"`

	Title     string `mapstructure:"title"`
	Summary   string `mapstructure:"summary"`
	StartTime any    `mapstructure:"startTime"`
	EndTime   any    `mapstructure:"endTime"`
	Start     any    `mapstructure:"start"`
	End       any    `mapstructure:"end"`
	Attendees any    `mapstructure:"attendees"`
	MeetLink  string `mapstructure:"meetLink"`
	Hangout   string `mapstructure:"hangoutLink"`
	Status    string `mapstructure:"status"`
}

// Calendar normalizes calendar agent output into zero or more events. An
// empty slice is a valid, renderable result, not an error.
func Calendar(raw any) []CalendarEvent {
	v := rawval.Resolve(raw)
	switch v.Kind {
	case rawval.Array:
		return calendarFromRecords(v.Arr)
	case rawval.Object:
		if meetings, ok := v.Obj["meetings"].([]any); ok {
			return calendarFromRecords(meetings)
		}
		// A single event object, not wrapped in a list.
		if ev, ok := calendarEvent(v.Obj); ok {
			return []CalendarEvent{ev}
		}
		return []CalendarEvent{}
	case rawval.Text:
		return calendarFromText(v.Text)
	default:
		return []CalendarEvent{}
	}
}

func calendarFromRecords(records []any) []CalendarEvent {
	events := []CalendarEvent{}
	for _, r := range records {
		obj, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if ev, ok := calendarEvent(obj); ok {
			events = append(events, ev)
		}
	}
	return events
}

// calendarEvent merges one event-like object into a CalendarEvent. Returns
// false when the object carries none of the recognized fields.
func calendarEvent(obj map[string]any) (CalendarEvent, bool) {
	var rec calendarRecord
	if err := mapstructure.Decode(obj, &rec); err != nil {
		return CalendarEvent{}, false
	}

	ev := CalendarEvent{
		Summary:  firstNonEmpty(stringValue(rec.EventSummary), rec.Title, rec.Summary),
		Start:    eventTime(coalesce(rec.StartLabeled, rec.StartTime, rec.Start)),
		End:      eventTime(coalesce(rec.EndLabeled, rec.EndTime, rec.End)),
		JoinLink: firstNonEmpty(rec.MeetingLink, rec.MeetLink, rec.Hangout),
		Status:   firstNonEmpty(rec.EventStatus, rec.Status),
	}
	ev.Attendees = attendees(coalesce(rec.AttendeesUpper, rec.Attendees))

	if ev.Summary == "" && ev.Start.DateTime == "" && len(ev.Attendees) == 0 {
		return CalendarEvent{}, false
	}
	return ev, true
}

// eventTime accepts either a plain string or a {dateTime, timeZone} object.
func eventTime(raw any) EventTime {
	switch v := raw.(type) {
	case string:
		return EventTime{DateTime: v}
	case map[string]any:
		var et struct {
			DateTime string `mapstructure:"dateTime"`
			Date     string `mapstructure:"date"`
			TimeZone string `mapstructure:"timeZone"`
		}
		if err := mapstructure.Decode(v, &et); err != nil {
			return EventTime{}
		}
		return EventTime{
			DateTime: firstNonEmpty(et.DateTime, et.Date),
			TimeZone: et.TimeZone,
		}
	default:
		return EventTime{}
	}
}

// attendees accepts a list whose entries are either bare email strings or
// attendee-like objects. Missing response statuses default to "needsAction".
func attendees(raw any) []Attendee {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []Attendee
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, Attendee{Email: v, ResponseStatus: DefaultResponseStatus})
			}
		case map[string]any:
			var rec struct {
				Email          string `mapstructure:"email"`
				DisplayName    string `mapstructure:"displayName"`
				Name           string `mapstructure:"name"`
				ResponseStatus string `mapstructure:"responseStatus"`
				Organizer      bool   `mapstructure:"organizer"`
				Optional       bool   `mapstructure:"optional"`
				Self           bool   `mapstructure:"self"`
			}
			if err := mapstructure.Decode(v, &rec); err != nil {
				continue
			}
			if rec.Email == "" && rec.DisplayName == "" && rec.Name == "" {
				continue
			}
			out = append(out, Attendee{
				Email:          rec.Email,
				DisplayName:    firstNonEmpty(rec.DisplayName, rec.Name),
				ResponseStatus: firstNonEmpty(rec.ResponseStatus, DefaultResponseStatus),
				Organizer:      rec.Organizer,
				Optional:       rec.Optional,
				Self:           rec.Self,
			})
		}
	}
	return out
}

var meetingBlockRE = regexp.MustCompile(`(?m)^\s*\**Meeting\s+\d+:?\**`)

// calendarFromText is the last-resort extraction for prose calendar output.
// It scans for repeated "Meeting N:" blocks and pulls Title:, Date:, Time:
// and Attendees: lines out of each. Blocks with neither a title nor a date
// are discarded.
func calendarFromText(text string) []CalendarEvent {
	locs := meetingBlockRE.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []CalendarEvent{}
	}

	events := []CalendarEvent{}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if ev, ok := eventFromBlock(text[loc[1]:end]); ok {
			events = append(events, ev)
		}
	}
	return events
}

func eventFromBlock(block string) (CalendarEvent, bool) {
	var ev CalendarEvent
	var date, timeRange string

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "title":
			ev.Summary = value
		case "date":
			date = value
		case "time":
			timeRange = value
		case "attendees":
			for _, name := range strings.Split(value, ",") {
				if name = strings.TrimSpace(name); name != "" {
					ev.Attendees = append(ev.Attendees, Attendee{
						Email:          name,
						ResponseStatus: DefaultResponseStatus,
					})
				}
			}
		}
	}

	if ev.Summary == "" && date == "" {
		return CalendarEvent{}, false
	}

	// "Time:" carries either a single time or a "start - end" range.
	start, endTime := splitTimeRange(timeRange)
	ev.Start = EventTime{DateTime: joinDateTime(date, start)}
	if endTime != "" {
		ev.End = EventTime{DateTime: joinDateTime(date, endTime)}
	}
	return ev, true
}

func splitTimeRange(s string) (start, end string) {
	for _, sep := range []string{" - ", " – ", "-"} {
		if a, b, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(a), strings.TrimSpace(b)
		}
	}
	return strings.TrimSpace(s), ""
}

func joinDateTime(date, clock string) string {
	switch {
	case date == "":
		return clock
	case clock == "":
		return date
	default:
		return date + " " + clock
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func coalesce(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
