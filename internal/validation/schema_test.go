package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDataBytes(t *testing.T) {
	t.Run("valid people data", func(t *testing.T) {
		doc, problems := ValidateDataBytes(KindPeopleData, []byte(`{
			"attendees": [
				{"email": "alice@example.com", "name": "Alice", "roles": ["Engineer"]}
			]
		}`))
		require.NotNil(t, doc)
		require.Empty(t, problems)
		require.Contains(t, doc, "attendees")
	})

	t.Run("schema failures keep the object usable", func(t *testing.T) {
		doc, problems := ValidateDataBytes(KindPeopleData, []byte(`{
			"attendees": [{"name": "no email"}]
		}`))
		require.NotNil(t, doc)
		require.NotEmpty(t, problems)
	})

	t.Run("invalid json is unusable", func(t *testing.T) {
		doc, problems := ValidateDataBytes(KindCalendarData, []byte(`{broken`))
		require.Nil(t, doc)
		require.Len(t, problems, 1)
		require.Contains(t, problems[0], "JSON parse error")
	})

	t.Run("non-object json is unusable", func(t *testing.T) {
		doc, problems := ValidateDataBytes(KindCalendarData, []byte(`[1, 2]`))
		require.Nil(t, doc)
		require.Contains(t, problems[0], "must be a JSON object")
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		doc, problems := ValidateDataBytes(DataKind("bogus"), []byte(`{}`))
		require.Nil(t, doc)
		require.Contains(t, problems[0], "unknown data kind")
	})

	t.Run("context schema accepts slack and technical data", func(t *testing.T) {
		for _, kind := range []DataKind{KindTechnicalData, KindSlackData} {
			doc, problems := ValidateDataBytes(kind, []byte(`{"summary": "quiet week"}`))
			require.NotNil(t, doc, "kind %s", kind)
			require.Empty(t, problems, "kind %s", kind)
		}
	})
}
