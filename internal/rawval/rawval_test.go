package rawval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("nil is empty", func(t *testing.T) {
		require.Equal(t, Empty, Resolve(nil).Kind)
	})

	t.Run("native object", func(t *testing.T) {
		v := Resolve(map[string]any{"a": 1})
		require.Equal(t, Object, v.Kind)
		require.Equal(t, map[string]any{"a": 1}, v.Obj)
	})

	t.Run("native array", func(t *testing.T) {
		v := Resolve([]any{"x"})
		require.Equal(t, Array, v.Kind)
		require.Equal(t, []any{"x"}, v.Arr)
	})

	t.Run("json object in string", func(t *testing.T) {
		v := Resolve(`{"a": 1}`)
		require.Equal(t, Object, v.Kind)
		require.Equal(t, map[string]any{"a": float64(1)}, v.Obj)
	})

	t.Run("json object inside a fence", func(t *testing.T) {
		v := Resolve("```json\n{\"a\": 1}\n```")
		require.Equal(t, Object, v.Kind)
		require.Equal(t, map[string]any{"a": float64(1)}, v.Obj)
	})

	t.Run("json array in string", func(t *testing.T) {
		v := Resolve(`[{"b": 2}]`)
		require.Equal(t, Array, v.Kind)
		require.Len(t, v.Arr, 1)
	})

	t.Run("prose degrades to text", func(t *testing.T) {
		v := Resolve("no structured data here")
		require.Equal(t, Text, v.Kind)
		require.Equal(t, "no structured data here", v.Text)
	})

	t.Run("truncated json degrades to text", func(t *testing.T) {
		v := Resolve(`{"a": 1`)
		require.Equal(t, Text, v.Kind)
		require.Equal(t, `{"a": 1`, v.Text)
	})

	t.Run("scalar json in string stays text", func(t *testing.T) {
		v := Resolve("42")
		require.Equal(t, Text, v.Kind)
		require.Equal(t, "42", v.Text)
	})

	t.Run("empty and blank strings are empty", func(t *testing.T) {
		require.Equal(t, Empty, Resolve("").Kind)
		require.Equal(t, Empty, Resolve("   \n  ").Kind)
	})

	t.Run("raw message recurses", func(t *testing.T) {
		v := Resolve(json.RawMessage(`{"a": 1}`))
		require.Equal(t, Object, v.Kind)
	})

	t.Run("unexpected native type becomes text", func(t *testing.T) {
		v := Resolve(3.5)
		require.Equal(t, Text, v.Kind)
		require.Equal(t, "3.5", v.Text)
	})
}

func TestUnmarshal(t *testing.T) {
	require.Equal(t, map[string]any{"a": float64(1)}, Unmarshal(`{"a": 1}`, nil))
	require.Equal(t, "fallback", Unmarshal("not json", "fallback"))
	require.Nil(t, Unmarshal("{", nil))
}

func TestValueString(t *testing.T) {
	require.Equal(t, "{\n  \"a\": 1\n}", Resolve(map[string]any{"a": 1}).String())
	require.Equal(t, "hello", Resolve("hello").String())
	require.Equal(t, "", Resolve(nil).String())
}
