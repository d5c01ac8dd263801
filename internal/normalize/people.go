package normalize

import (
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/briefdeck/briefdeck/internal/rawval"
)

// peopleRecord is the structured shape of one attendee profile. The plural
// roles/organizations fields take priority over their singular forms when a
// payload carries both.
type peopleRecord struct {
	Email         string   `mapstructure:"email"`
	Name          string   `mapstructure:"name"`
	Role          string   `mapstructure:"role"`
	Roles         []string `mapstructure:"roles"`
	Organization  string   `mapstructure:"organization"`
	Organizations []string `mapstructure:"organizations"`
	Background    string   `mapstructure:"background"`
	Expertise     string   `mapstructure:"expertise"`
	Context       string   `mapstructure:"context"`
	Websites      []string `mapstructure:"websites"`
}

// People normalizes people-research agent output into attendee profiles.
// Structured input is a JSON array of profile objects; prose input is
// scanned for "**email (name)**" headers followed by "- Label: value"
// lines. Unrecognized text yields zero profiles.
func People(raw any) []AttendeeProfile {
	v := rawval.Resolve(raw)
	switch v.Kind {
	case rawval.Array:
		return peopleFromRecords(v.Arr)
	case rawval.Object:
		// Some payloads wrap the list in an object.
		for _, key := range []string{"attendees", "profiles", "people"} {
			if list, ok := v.Obj[key].([]any); ok {
				return peopleFromRecords(list)
			}
		}
		return []AttendeeProfile{}
	case rawval.Text:
		return peopleFromText(v.Text)
	default:
		return []AttendeeProfile{}
	}
}

func peopleFromRecords(records []any) []AttendeeProfile {
	profiles := []AttendeeProfile{}
	for _, r := range records {
		obj, ok := r.(map[string]any)
		if !ok {
			continue
		}
		var rec peopleRecord
		if err := mapstructure.Decode(obj, &rec); err != nil {
			continue
		}
		p := AttendeeProfile{
			Email:         rec.Email,
			Name:          rec.Name,
			Roles:         rec.Roles,
			Organizations: rec.Organizations,
			Background:    rec.Background,
			Expertise:     rec.Expertise,
			Context:       rec.Context,
			Websites:      rec.Websites,
		}
		if len(p.Roles) == 0 && rec.Role != "" {
			p.Roles = []string{rec.Role}
		}
		if len(p.Organizations) == 0 && rec.Organization != "" {
			p.Organizations = []string{rec.Organization}
		}
		if p.Email == "" && p.Name == "" {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// profileHeaderRE matches "**email (name)**" profile headers in prose.
var profileHeaderRE = regexp.MustCompile(`\*\*\s*([^\s*(]+@[^\s*()]+)\s*\(([^)]*)\)\s*\*\*`)

func peopleFromText(text string) []AttendeeProfile {
	matches := profileHeaderRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []AttendeeProfile{}
	}

	profiles := []AttendeeProfile{}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		p := AttendeeProfile{
			Email: text[m[2]:m[3]],
			Name:  strings.TrimSpace(text[m[4]:m[5]]),
		}
		fillProfileFields(&p, text[m[1]:end])
		profiles = append(profiles, p)
	}
	return profiles
}

// fillProfileFields parses the "- Label: value" lines under a profile header.
func fillProfileFields(p *AttendeeProfile, block string) {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		label, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "-")), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "role":
			p.Roles = append(p.Roles, value)
		case "organization":
			p.Organizations = append(p.Organizations, value)
		case "background":
			p.Background = value
		case "expertise":
			p.Expertise = value
		case "context":
			p.Context = value
		case "website", "websites":
			p.Websites = append(p.Websites, value)
		}
	}
}
