// Package rawval resolves the loosely-typed payloads the backend attaches to
// job results. The same logical result may arrive as a JSON object, a JSON
// array, a JSON-encoded string, markdown-wrapped JSON, or plain prose. Value
// is the tagged union that makes the actual shape explicit, so downstream
// transformers dispatch on a discriminant instead of scattering type
// assertions through render code.
package rawval

import (
	"encoding/json"

	"github.com/briefdeck/briefdeck/internal/sanitize"
)

// Kind discriminates the resolved shape of a raw payload.
type Kind int

const (
	// Empty means no payload (nil, or an empty string).
	Empty Kind = iota
	// Object is a JSON object, native or recovered from a string.
	Object
	// Array is a JSON array, native or recovered from a string.
	Array
	// Text is a string that does not parse as structured data.
	Text
)

// Value is a resolved raw payload.
type Value struct {
	Kind Kind
	Obj  map[string]any
	Arr  []any
	Text string
}

// Resolve classifies raw into a Value. Strings are sanitized and then parsed
// as JSON; a parse failure degrades to Text, never to an error. Scalar JSON
// values (numbers, booleans) inside strings also degrade to Text: there is
// nothing structured to normalize in them.
func Resolve(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{Kind: Empty}
	case map[string]any:
		return Value{Kind: Object, Obj: v}
	case []any:
		return Value{Kind: Array, Arr: v}
	case string:
		clean := sanitize.Clean(v)
		if clean == "" {
			return Value{Kind: Empty}
		}
		switch parsed := Unmarshal(clean, nil).(type) {
		case map[string]any:
			return Value{Kind: Object, Obj: parsed}
		case []any:
			return Value{Kind: Array, Arr: parsed}
		default:
			return Value{Kind: Text, Text: clean}
		}
	case json.RawMessage:
		return Resolve(string(v))
	default:
		// Unexpected native type (number, bool, struct): render it as text
		// rather than dropping it.
		data, err := json.Marshal(v)
		if err != nil {
			return Value{Kind: Empty}
		}
		return Resolve(string(data))
	}
}

// Unmarshal parses s as JSON and returns the result, or fallback when s is
// not valid JSON. It never returns an error: malformed backend output must
// degrade to the fallback, not crash the caller.
func Unmarshal(s string, fallback any) any {
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return fallback
	}
	return out
}

// String renders the value back to display text: objects and arrays as
// indented JSON, text as itself.
func (v Value) String() string {
	switch v.Kind {
	case Object:
		return marshalIndent(v.Obj)
	case Array:
		return marshalIndent(v.Arr)
	case Text:
		return v.Text
	default:
		return ""
	}
}

func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
