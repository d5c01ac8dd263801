package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeople_StructuredShapes(t *testing.T) {
	native := []any{
		map[string]any{
			"email":        "alice@example.com",
			"name":         "Alice",
			"role":         "Staff Engineer",
			"organization": "Platform",
			"background":   "Distributed systems.",
			"websites":     []any{"https://alice.example"},
		},
	}

	t.Run("native array and json string agree", func(t *testing.T) {
		encoded, err := json.Marshal(native)
		require.NoError(t, err)

		fromNative := People(native)
		fromString := People(string(encoded))
		require.Equal(t, fromNative, fromString)

		require.Len(t, fromNative, 1)
		p := fromNative[0]
		require.Equal(t, "alice@example.com", p.Email)
		require.Equal(t, []string{"Staff Engineer"}, p.Roles)
		require.Equal(t, []string{"Platform"}, p.Organizations)
	})

	t.Run("plural fields win over singular", func(t *testing.T) {
		profiles := People([]any{
			map[string]any{
				"email":         "bob@example.com",
				"role":          "ignored",
				"roles":         []any{"CTO", "Founder"},
				"organizations": []any{"Acme"},
			},
		})
		require.Len(t, profiles, 1)
		require.Equal(t, []string{"CTO", "Founder"}, profiles[0].Roles)
		require.Equal(t, []string{"Acme"}, profiles[0].Organizations)
	})

	t.Run("wrapper object keys", func(t *testing.T) {
		for _, key := range []string{"attendees", "profiles", "people"} {
			profiles := People(map[string]any{
				key: []any{map[string]any{"email": "c@example.com"}},
			})
			require.Len(t, profiles, 1, "key %q", key)
		}
	})

	t.Run("records without identity are dropped", func(t *testing.T) {
		profiles := People([]any{
			map[string]any{"background": "anonymous"},
			map[string]any{"name": "Named"},
		})
		require.Len(t, profiles, 1)
		require.Equal(t, "Named", profiles[0].Name)
	})
}

func TestPeople_TextFallback(t *testing.T) {
	text := `Research results for the attendees:

**alice@example.com (Alice Chen)**
- Role: Staff Engineer
- Role: Tech Lead
- Organization: Platform
- Background: Ten years in distributed systems.
- Website: https://alice.example

**bob@example.com (Bob)**
- Expertise: Frontend performance
`

	profiles := People(text)
	require.Len(t, profiles, 2)

	require.Equal(t, "alice@example.com", profiles[0].Email)
	require.Equal(t, "Alice Chen", profiles[0].Name)
	require.Equal(t, []string{"Staff Engineer", "Tech Lead"}, profiles[0].Roles)
	require.Equal(t, []string{"Platform"}, profiles[0].Organizations)
	require.Equal(t, "Ten years in distributed systems.", profiles[0].Background)
	require.Equal(t, []string{"https://alice.example"}, profiles[0].Websites)

	require.Equal(t, "bob@example.com", profiles[1].Email)
	require.Equal(t, "Frontend performance", profiles[1].Expertise)
}

func TestPeople_Totality(t *testing.T) {
	for _, raw := range []any{nil, "", "no profiles here", map[string]any{"foo": 1}, []any{1, 2}} {
		profiles := People(raw)
		require.NotNil(t, profiles)
		require.Empty(t, profiles)
	}
}
