// Package render turns normalized agent results into terminal output. It
// owns the per-key view configuration (label, glyph, color) and the
// raw/visual dispatch: Visual mode renders the typed domain records,
// Raw mode renders the sanitized original text or indented JSON. The mode
// only affects display, never parsing.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/normalize"
	"github.com/briefdeck/briefdeck/internal/rawval"
)

// Mode selects between the transformed visual form and the raw payload.
type Mode int

const (
	ModeVisual Mode = iota
	ModeRaw
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeVisual {
		return ModeRaw
	}
	return ModeVisual
}

// ViewConfig is the presentation metadata for one agent key.
type ViewConfig struct {
	Key   string
	Label string
	Glyph string
	Color lipgloss.Color
}

var viewConfigs = map[string]ViewConfig{
	api.AgentCalendar:      {Key: api.AgentCalendar, Label: "Calendar", Glyph: "▦", Color: lipgloss.Color("33")},
	api.AgentPeople:        {Key: api.AgentPeople, Label: "People Research", Glyph: "◉", Color: lipgloss.Color("135")},
	api.AgentTechnical:     {Key: api.AgentTechnical, Label: "Technical Context", Glyph: "⌘", Color: lipgloss.Color("36")},
	api.AgentSlack:         {Key: api.AgentSlack, Label: "Team Comms", Glyph: "◆", Color: lipgloss.Color("170")},
	api.AgentAgenda:        {Key: api.AgentAgenda, Label: "Agenda", Glyph: "≡", Color: lipgloss.Color("214")},
	api.AgentPreread:       {Key: api.AgentPreread, Label: "Pre-read", Glyph: "❐", Color: lipgloss.Color("108")},
	api.AgentCoordinator:   {Key: api.AgentCoordinator, Label: "Coordinator", Glyph: "✦", Color: lipgloss.Color("75")},
	api.AgentFinalBriefing: {Key: api.AgentFinalBriefing, Label: "Final Briefing", Glyph: "★", Color: lipgloss.Color("42")},
}

var titleCaser = cases.Title(language.English)

// Config returns the view configuration for key. Unknown keys get a generic
// config with a humanized label.
func Config(key string) ViewConfig {
	if cfg, ok := viewConfigs[key]; ok {
		return cfg
	}
	return ViewConfig{
		Key:   key,
		Label: titleCaser.String(strings.ReplaceAll(key, "_", " ")),
		Glyph: "·",
		Color: lipgloss.Color("245"),
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Faint(true)
	noDataStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	priorityTint = map[string]lipgloss.Color{
		normalize.PriorityHigh:   lipgloss.Color("196"),
		normalize.PriorityMedium: lipgloss.Color("214"),
		normalize.PriorityLow:    lipgloss.Color("36"),
	}
)

// Render produces the display form of one result payload. Visual mode runs
// the domain transformer registered for key and lays out the typed records;
// unknown keys and Raw mode fall back to the sanitized original.
func Render(key string, raw any, mode Mode, width int) string {
	if width <= 0 {
		width = 80
	}
	if mode == ModeRaw {
		return renderRaw(raw)
	}

	switch key {
	case api.AgentCalendar:
		return renderCalendar(normalize.Calendar(raw), width)
	case api.AgentPeople:
		return renderPeople(normalize.People(raw), width)
	case api.AgentAgenda:
		doc, ok := normalize.Agenda(raw)
		if !ok {
			return noData("no agenda data")
		}
		return renderAgenda(doc, width)
	case api.AgentPreread:
		packet, ok := normalize.Preread(raw)
		if !ok {
			return noData("no pre-read documents")
		}
		return renderPreread(packet, width)
	case api.AgentTechnical:
		return renderSections(normalize.Technical(raw), width)
	case api.AgentSlack:
		return renderSections(normalize.TeamComms(raw), width)
	case api.AgentCoordinator, api.AgentFinalBriefing:
		return renderRaw(raw)
	default:
		return renderRaw(raw)
	}
}

// renderRaw shows the payload as close to its original form as possible:
// sanitized text for strings, indented JSON for structured values.
func renderRaw(raw any) string {
	v := rawval.Resolve(raw)
	if v.Kind == rawval.Empty {
		return noData("no data")
	}
	return v.String()
}

func noData(msg string) string {
	return noDataStyle.Render("(" + msg + ")")
}

func renderCalendar(events []normalize.CalendarEvent, width int) string {
	if len(events) == 0 {
		return noData("no meetings found")
	}
	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteString("\n")
		}
		title := ev.Summary
		if title == "" {
			title = "(untitled meeting)"
		}
		b.WriteString(titleStyle.Render(Truncate(title, width)) + "\n")
		if when := formatWhen(ev.Start, ev.End); when != "" {
			b.WriteString("  " + when + "\n")
		}
		if ev.Status != "" {
			b.WriteString("  " + labelStyle.Render("status:") + " " + ev.Status + "\n")
		}
		if ev.JoinLink != "" {
			b.WriteString("  " + labelStyle.Render("join:") + " " + Truncate(ev.JoinLink, width-8) + "\n")
		}
		for _, a := range ev.Attendees {
			line := a.Email
			if a.DisplayName != "" && a.DisplayName != a.Email {
				line = fmt.Sprintf("%s <%s>", a.DisplayName, a.Email)
			}
			marks := attendeeMarks(a)
			b.WriteString("  • " + Truncate(line, width-4) + faintStyle.Render(marks) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func attendeeMarks(a normalize.Attendee) string {
	var marks []string
	if a.Organizer {
		marks = append(marks, "organizer")
	}
	if a.Optional {
		marks = append(marks, "optional")
	}
	if a.ResponseStatus != "" && a.ResponseStatus != normalize.DefaultResponseStatus {
		marks = append(marks, a.ResponseStatus)
	}
	if len(marks) == 0 {
		return ""
	}
	return " (" + strings.Join(marks, ", ") + ")"
}

func formatWhen(start, end normalize.EventTime) string {
	if start.DateTime == "" {
		return ""
	}
	s := start.DateTime
	if end.DateTime != "" {
		s += " → " + end.DateTime
	}
	if start.TimeZone != "" {
		s += " (" + start.TimeZone + ")"
	}
	return s
}

func renderPeople(profiles []normalize.AttendeeProfile, width int) string {
	if len(profiles) == 0 {
		return noData("no attendee profiles")
	}
	var b strings.Builder
	for i, p := range profiles {
		if i > 0 {
			b.WriteString("\n")
		}
		header := p.Email
		if p.Name != "" {
			header = fmt.Sprintf("%s (%s)", p.Name, p.Email)
		}
		b.WriteString(titleStyle.Render(Truncate(header, width)) + "\n")
		writeField(&b, "role", strings.Join(p.Roles, ", "), width)
		writeField(&b, "org", strings.Join(p.Organizations, ", "), width)
		writeField(&b, "background", p.Background, width)
		writeField(&b, "expertise", p.Expertise, width)
		writeField(&b, "context", p.Context, width)
		writeField(&b, "links", strings.Join(p.Websites, ", "), width)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string, width int) {
	if value == "" {
		return
	}
	b.WriteString("  " + labelStyle.Render(label+":") + " " + Truncate(value, width-len(label)-4) + "\n")
}

func renderAgenda(doc normalize.AgendaDocument, width int) string {
	var b strings.Builder
	if doc.MeetingTitle != "" {
		b.WriteString(titleStyle.Render(Truncate(doc.MeetingTitle, width)) + "\n")
	}
	meta := []string{}
	if doc.EstimatedDuration != "" {
		meta = append(meta, doc.EstimatedDuration)
	}
	if doc.FocusMode != "" {
		meta = append(meta, "focus: "+doc.FocusMode)
	}
	if len(meta) > 0 {
		b.WriteString(faintStyle.Render(strings.Join(meta, " · ")) + "\n")
	}
	if len(doc.Items) == 0 {
		b.WriteString(noData("no agenda items"))
		return b.String()
	}
	for i, item := range doc.Items {
		badge := lipgloss.NewStyle().Foreground(priorityTint[item.Priority]).Render("[" + item.Priority + "]")
		b.WriteString(fmt.Sprintf("\n%d. %s %s", i+1, titleStyle.Render(Truncate(item.Title, width-12)), badge))
		if item.TimeAllocation != "" {
			b.WriteString(faintStyle.Render(" " + item.TimeAllocation))
		}
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString("   " + Truncate(item.Description, width-3) + "\n")
		}
		if item.Context != "" {
			b.WriteString("   " + faintStyle.Render(Truncate(item.Context, width-3)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPreread(packet normalize.PrereadPacket, width int) string {
	var b strings.Builder
	if packet.MeetingTitle != "" {
		b.WriteString(titleStyle.Render(Truncate(packet.MeetingTitle, width)) + "\n")
	}
	if packet.Summary != "" {
		b.WriteString(Truncate(packet.Summary, width) + "\n")
	}
	if len(packet.Documents) == 0 {
		b.WriteString(noData("no documents"))
		return b.String()
	}
	for _, d := range packet.Documents {
		b.WriteString("\n" + titleStyle.Render(Truncate(d.Title, width-10)))
		b.WriteString(faintStyle.Render(fmt.Sprintf("  [%.0f/10]", d.RelevanceScore)) + "\n")
		writeField(&b, "source", d.Source, width)
		writeField(&b, "type", d.Type, width)
		if d.Summary != "" {
			b.WriteString("  " + Truncate(d.Summary, width-2) + "\n")
		}
		for _, kp := range d.KeyPoints {
			b.WriteString("  • " + Truncate(kp, width-4) + "\n")
		}
		writeField(&b, "link", d.Link, width)
		writeField(&b, "updated", d.LastUpdated, width)
	}
	if len(packet.ActionItems) > 0 {
		b.WriteString("\n" + labelStyle.Render("action items") + "\n")
		for _, a := range packet.ActionItems {
			b.WriteString("  ☐ " + Truncate(a, width-4) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSections(sections []normalize.ContextSection, width int) string {
	if len(sections) == 0 {
		return noData("no information available")
	}
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Title != "" {
			b.WriteString(titleStyle.Render(Truncate(s.Title, width)) + "\n")
		}
		if s.Content != "" {
			b.WriteString(s.Content + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Truncate shortens s to fit width terminal cells, appending an ellipsis
// when anything was cut. Widths are measured per cell, not per byte, so
// double-width runes do not overflow the line.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
