package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatShellScalars(t *testing.T) {
	tests := []struct {
		name string
		node any
		want string
	}{
		{"string", "hello", "hello"},
		{"integer", int64(42), "42"},
		{"float", 1.5, "1.5"},
		{"float whole", 3.0, "3"},
		{"bool true", true, "1"},
		{"bool false", false, "0"},
		{"datetime", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), "2024-06-01T12:30:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatShell(tt.node))
		})
	}
}

func TestFormatShellArrays(t *testing.T) {
	assert.Equal(t, "ruff pre-commit", FormatShell([]any{"ruff", "pre-commit"}))
	assert.Equal(t, "1 2 3", FormatShell([]any{int64(1), int64(2), int64(3)}))
	// Arrays holding composites fall back to compact JSON.
	assert.Equal(t, `[{"a":1}]`, FormatShell([]any{map[string]any{"a": int64(1)}}))
}

func TestFormatShellTable(t *testing.T) {
	got := FormatShell(map[string]any{"name": "tomlraider"})
	assert.Equal(t, `{"name":"tomlraider"}`, got)
}

func TestFormatJSON(t *testing.T) {
	got, err := FormatJSON(map[string]any{"version": "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0.0"}`, got)
}

func TestFormatTOML(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		got, err := FormatTOML(map[string]any{"name": "tomlraider"})
		require.NoError(t, err)
		assert.Contains(t, got, `name = 'tomlraider'`)
	})
	t.Run("scalar passes through", func(t *testing.T) {
		got, err := FormatTOML("1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", got)
	})
	t.Run("array", func(t *testing.T) {
		got, err := FormatTOML([]any{int64(1), int64(2)})
		require.NoError(t, err)
		assert.Contains(t, got, "1")
		assert.Contains(t, got, "2")
	})
}

func TestFormatYAML(t *testing.T) {
	got, err := FormatYAML(map[string]any{"name": "tomlraider"}, YAMLFormatOptions{})
	require.NoError(t, err)
	assert.Contains(t, got, "name: tomlraider")
}

func TestFormatYAMLLiteralBlocks(t *testing.T) {
	got, err := FormatYAML(map[string]any{"text": "a\nb\n"}, YAMLFormatOptions{LiteralBlockStrings: true})
	require.NoError(t, err)
	assert.Contains(t, got, "|")
}

func TestFormatAsTree(t *testing.T) {
	node := map[string]any{
		"package": map[string]any{"name": "tomlraider"},
		"tags":    []any{"a", "b"},
	}
	got := FormatAsTree(node, TreeOptions{SortOrder: SortAscending})
	assert.Contains(t, got, "package")
	assert.Contains(t, got, "name: tomlraider")
	// Short scalar arrays render inline.
	assert.Contains(t, got, `["a","b"]`)
}

func TestFormatAsList(t *testing.T) {
	node := map[string]any{
		"b": int64(2),
		"a": map[string]any{"c": "x"},
	}
	got := FormatAsList(node, ListOptions{NoColor: true, SortOrder: SortAscending})
	assert.Equal(t, "a\n  c: x\nb: 2\n", got)
}

func TestFormatAsListScalar(t *testing.T) {
	got := FormatAsList("1.0.0", ListOptions{NoColor: true})
	assert.Equal(t, "value: 1.0.0\n", got)
}

func TestRenderDispatch(t *testing.T) {
	node := map[string]any{"a": int64(1)}
	for _, mode := range ValidModes {
		out, err := Render(node, mode, Options{NoColor: true})
		require.NoError(t, err, "mode %s", mode)
		assert.NotEmpty(t, out, "mode %s", mode)
	}
	_, err := Render(node, Mode("bogus"), Options{})
	require.Error(t, err)
}

func TestValidateMode(t *testing.T) {
	require.NoError(t, ValidateMode("shell"))
	require.NoError(t, ValidateMode("json"))
	require.Error(t, ValidateMode("xml"))
}

func TestStringifyEscapesControlChars(t *testing.T) {
	assert.Equal(t, `a\nb`, Stringify("a\nb"))
	assert.Equal(t, `a\tb`, Stringify("a\tb"))
}

func TestValidateSortOrder(t *testing.T) {
	for _, s := range []string{"", "none", "asc", "ascending", "desc", "descending"} {
		require.NoError(t, ValidateSortOrder(s), "spelling %q", s)
	}
	require.Error(t, ValidateSortOrder("bogus"))
	require.Error(t, ValidateSortOrder("random"))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortAscending, ParseSortOrder("asc"))
	assert.Equal(t, SortDescending, ParseSortOrder("descending"))
	assert.Equal(t, SortNone, ParseSortOrder(""))
	assert.Equal(t, SortNone, ParseSortOrder("anything"))
}
