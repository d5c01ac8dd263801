// Package validation checks user-supplied agent data files against embedded
// JSON Schemas before they are sent to the backend. Catching a malformed
// data file locally is cheaper than submitting a job that fails minutes in.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/briefdeck/briefdeck/schemas"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// DataKind names one of the agent data payloads accepted by the custom
// prepare endpoint.
type DataKind string

const (
	KindCalendarData  DataKind = "calendar_data"
	KindPeopleData    DataKind = "people_data"
	KindTechnicalData DataKind = "technical_data"
	KindSlackData     DataKind = "slack_data"
)

var dataSchemas map[DataKind]*jsonschema.Schema

func init() {
	dataSchemas = map[DataKind]*jsonschema.Schema{
		KindCalendarData:  mustCompileSchema(schemas.CalendarDataJSON, "calendar_data.schema.json"),
		KindPeopleData:    mustCompileSchema(schemas.PeopleDataJSON, "people_data.schema.json"),
		KindTechnicalData: mustCompileSchema(schemas.ContextDataJSON, "context_data.schema.json"),
		KindSlackData:     mustCompileSchema(schemas.ContextDataJSON, "context_data.schema.json"),
	}
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateDataBytes validates a raw JSON data file against the schema for
// kind. A nil object means the data is not usable at all (not JSON, or not
// an object). A non-nil object with validation failures is still usable: the
// backend tolerates loosely-shaped data, so callers may treat those failures
// as warnings.
func ValidateDataBytes(kind DataKind, data []byte) (map[string]any, []string) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, []string{fmt.Sprintf("JSON parse error: %v", err)}
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, []string{fmt.Sprintf("%s must be a JSON object", kind)}
	}

	schema, ok := dataSchemas[kind]
	if !ok {
		return nil, []string{fmt.Sprintf("unknown data kind %q", kind)}
	}
	return obj, validateAgainstSchema(schema, doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, errs)
	}
}
