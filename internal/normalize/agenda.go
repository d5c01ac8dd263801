package normalize

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/briefdeck/briefdeck/internal/rawval"
)

// Agenda normalizes agenda agent output. The payload is either an object
// with an "agenda" property or the agenda object itself, possibly JSON-
// encoded in a string. ok is false when no agenda items are present, which
// is a "no data" outcome, not an error.
func Agenda(raw any) (AgendaDocument, bool) {
	v := rawval.Resolve(raw)
	if v.Kind != rawval.Object {
		return AgendaDocument{}, false
	}

	obj := v.Obj
	if inner, found := obj["agenda"].(map[string]any); found {
		obj = inner
	}
	if _, found := obj["agenda_items"]; !found {
		return AgendaDocument{}, false
	}

	var rec struct {
		MeetingTitle      string `mapstructure:"meeting_title"`
		EstimatedDuration string `mapstructure:"estimated_duration"`
		FocusMode         string `mapstructure:"focus_mode"`
		AgendaItems       []struct {
			Title          string `mapstructure:"title"`
			Description    string `mapstructure:"description"`
			Priority       string `mapstructure:"priority"`
			TimeAllocation string `mapstructure:"time_allocation"`
			Context        string `mapstructure:"context"`
		} `mapstructure:"agenda_items"`
	}
	if err := mapstructure.Decode(obj, &rec); err != nil {
		return AgendaDocument{}, false
	}

	doc := AgendaDocument{
		MeetingTitle:      rec.MeetingTitle,
		EstimatedDuration: rec.EstimatedDuration,
		FocusMode:         rec.FocusMode,
		Items:             make([]AgendaItem, 0, len(rec.AgendaItems)),
	}
	for _, item := range rec.AgendaItems {
		doc.Items = append(doc.Items, AgendaItem{
			Title:          item.Title,
			Description:    item.Description,
			Priority:       normalizePriority(item.Priority),
			TimeAllocation: item.TimeAllocation,
			Context:        item.Context,
		})
	}
	return doc, true
}

// normalizePriority maps free-form priority text onto the three-level enum,
// defaulting to Medium.
func normalizePriority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "urgent", "critical":
		return PriorityHigh
	case "low", "minor":
		return PriorityLow
	default:
		return PriorityMedium
	}
}
