package mockapi

// sampleResult returns demo output for one agent. The shapes are chosen on
// purpose to cover everything the normalizer tolerates: markdown-fenced
// JSON, native objects, JSON arrays in strings, and plain prose.
func sampleResult(agent string) any {
	switch agent {
	case "calendar":
		return "```json\n[\n  {\n    \"Event Summary\": \"Q3 Planning Sync\",\n    \"Start Date and Time\": {\"dateTime\": \"2025-09-02T10:00:00\", \"timeZone\": \"UTC\"},\n    \"End Date and Time\": {\"dateTime\": \"2025-09-02T11:00:00\", \"timeZone\": \"UTC\"},\n    \"Attendees\": [\"dana@example.com\", {\"email\": \"lee@example.com\", \"organizer\": true}],\n    \"Meeting Link\": \"https://meet.example.com/q3-sync\"\n  },\n  {\n    \"title\": \"Design Review\",\n    \"startTime\": \"2025-09-02T14:00:00\",\n    \"endTime\": \"2025-09-02T14:30:00\",\n    \"attendees\": [{\"email\": \"sam@example.com\", \"responseStatus\": \"accepted\"}]\n  }\n]\n```"
	case "people_research":
		return `[{"email": "dana@example.com", "name": "Dana Reyes", "roles": ["Engineering Manager"], "organizations": ["Platform"], "background": "Joined 2021, previously at a cloud infra startup.", "expertise": "Distributed systems, on-call tooling"}, {"email": "lee@example.com", "name": "Lee Osei", "role": "Product Lead", "organization": "Core Product"}]`
	case "technical_context":
		return "## Current Architecture\nThe service runs as three regional deployments behind a shared gateway.\n\n## Open Incidents\nINC-2041 (elevated p99 latency) is still under investigation.\n\n## Recent Changes\nThe retry budget change shipped last Tuesday."
	case "slack_context":
		return "#platform-eng has been discussing the gateway timeout bump. Dana flagged that the rollout plan needs sign-off before Thursday."
	case "agenda":
		return map[string]any{
			"agenda": map[string]any{
				"meeting_title":      "Q3 Planning Sync",
				"estimated_duration": "60 minutes",
				"focus_mode":         "planning",
				"agenda_items": []any{
					map[string]any{
						"title":           "Gateway timeout rollout",
						"description":     "Review the rollout plan and sign-off checklist.",
						"priority":        "High",
						"time_allocation": "20 min",
					},
					map[string]any{
						"title":           "Q3 headcount",
						"description":     "Confirm open requisitions.",
						"priority":        "Medium",
						"time_allocation": "15 min",
					},
				},
			},
		}
	case "preread_documents":
		return map[string]any{
			"preread_packet": map[string]any{
				"meeting_title": "Q3 Planning Sync",
				"summary":       "Two documents are strongly relevant to Thursday's decisions.",
				"documents": []any{
					map[string]any{
						"title":           "Gateway timeout rollout plan",
						"source":          "Engineering wiki",
						"type":            "design doc",
						"relevance_score": 9,
						"summary":         "Proposed staged rollout with regional canaries.",
						"key_points":      []any{"Canary in eu-west first", "Rollback budget is 15 minutes"},
						"link":            "https://wiki.example.com/gateway-rollout",
						"last_updated":    "3 days ago",
					},
				},
				"action_items": []any{"Confirm canary region owner before the meeting"},
			},
		}
	case "coordinator":
		return "All agents completed. Calendar found 2 meetings; people research profiled 2 attendees; one open incident is relevant to the agenda."
	case "final_briefing":
		return "# Meeting Briefing: Q3 Planning Sync\n\n**When:** Tuesday 10:00–11:00 UTC\n\n## Key context\n- INC-2041 is still open and will come up.\n- The gateway timeout rollout needs sign-off by Thursday.\n\n## Suggested focus\nSpend the first 20 minutes on the rollout plan; Dana has the latest canary results."
	default:
		return "No information available"
	}
}
