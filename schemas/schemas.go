// Package schemas embeds the JSON Schemas used to validate user-supplied
// agent data files before they are submitted to the backend.
package schemas

import _ "embed"

//go:embed calendar_data.schema.json
var CalendarDataJSON string

//go:embed people_data.schema.json
var PeopleDataJSON string

//go:embed context_data.schema.json
var ContextDataJSON string
