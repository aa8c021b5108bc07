// Package formatter renders resolved TOML nodes for the CLI. Scalars
// print in canonical textual form; composite nodes can be serialized as
// JSON, TOML, YAML, an ASCII tree, or an indented list.
package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/pelletier/go-toml/v2"
)

// Mode selects the output rendering.
type Mode string

const (
	ModeShell Mode = "shell"
	ModeJSON  Mode = "json"
	ModeTOML  Mode = "toml"
	ModeYAML  Mode = "yaml"
	ModeTree  Mode = "tree"
	ModeList  Mode = "list"
)

// ShellListSeparator joins scalar array elements in shell mode.
const ShellListSeparator = " "

// ValidModes lists the accepted values for the --output flag.
var ValidModes = []Mode{ModeShell, ModeJSON, ModeTOML, ModeYAML, ModeTree, ModeList}

// ValidateMode returns an error when mode is not a known output mode.
func ValidateMode(mode string) error {
	for _, m := range ValidModes {
		if Mode(mode) == m {
			return nil
		}
	}
	return fmt.Errorf("invalid output mode %q: valid values are shell, json, toml, yaml, tree, list", mode)
}

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
)

// Options carries cross-mode rendering settings.
type Options struct {
	NoColor    bool
	SortOrder  SortOrder
	YAMLIndent int
}

// Render formats node according to mode. The returned string has no
// trailing newline; the CLI decides the line ending.
func Render(node any, mode Mode, opts Options) (string, error) {
	switch mode {
	case ModeShell:
		return FormatShell(node), nil
	case ModeJSON:
		return FormatJSON(node)
	case ModeTOML:
		return FormatTOML(node)
	case ModeYAML:
		out, err := FormatYAML(node, YAMLFormatOptions{Indent: opts.YAMLIndent, LiteralBlockStrings: true})
		return strings.TrimRight(out, "\n"), err
	case ModeTree:
		return strings.TrimRight(FormatAsTree(node, TreeOptions{SortOrder: opts.SortOrder}), "\n"), nil
	case ModeList:
		return strings.TrimRight(FormatAsList(node, ListOptions{NoColor: opts.NoColor, SortOrder: opts.SortOrder}), "\n"), nil
	default:
		return "", fmt.Errorf("unknown output mode %q", string(mode))
	}
}

// FormatShell renders a node the way shell scripts expect to consume it:
// strings bare, booleans as 1/0, date-times in RFC 3339, arrays of
// scalars joined with a single space. Tables and arrays that contain
// composites fall back to compact JSON so the output stays re-parseable.
func FormatShell(node any) string {
	switch v := node.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case []any:
		if allScalars(v) {
			parts := make([]string, len(v))
			for i, e := range v {
				parts[i] = FormatShell(e)
			}
			return strings.Join(parts, ShellListSeparator)
		}
		return Stringify(v)
	case map[string]any:
		return Stringify(v)
	default:
		return scalarString(node)
	}
}

// FormatJSON renders a node as compact JSON.
func FormatJSON(node any) (string, error) {
	b, err := json.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return string(b), nil
}

// FormatTOML renders a node as a TOML fragment. A lone scalar is not a
// valid TOML document, so scalars print in their canonical text form.
func FormatTOML(node any) (string, error) {
	switch node.(type) {
	case map[string]any:
		b, err := toml.Marshal(node)
		if err != nil {
			return "", fmt.Errorf("encoding TOML: %w", err)
		}
		return strings.TrimRight(string(b), "\n"), nil
	case []any:
		// Wrap the array so the marshaler has a key to attach it to,
		// then strip the synthetic key.
		b, err := toml.Marshal(map[string]any{"value": node})
		if err != nil {
			return "", fmt.Errorf("encoding TOML: %w", err)
		}
		return strings.TrimRight(strings.TrimPrefix(string(b), "value = "), "\n"), nil
	default:
		return scalarString(node), nil
	}
}

// Stringify returns a compact single-line representation for a node:
// scalars in canonical form, composites as compact JSON. Used for table
// rows and list values.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return escapeScalarString(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		return scalarString(v)
	}
}

// scalarString renders a scalar in its canonical text form.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case toml.LocalDate:
		return t.String()
	case toml.LocalDateTime:
		return t.String()
	case toml.LocalTime:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// escapeScalarString flattens control characters so rows stay single-line.
func escapeScalarString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return strings.ReplaceAll(s, "\t", "\\t")
}

func allScalars(arr []any) bool {
	for _, e := range arr {
		switch e.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func isObjectType(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
