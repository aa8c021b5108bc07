package formatter

import (
	"fmt"
	"strings"
)

// ListOptions controls list output formatting.
type ListOptions struct {
	NoColor   bool
	SortOrder SortOrder
}

// FormatAsList renders a node in a vertical key/value list. Arrays of
// tables display each element with an index header and indented
// properties; scalars display as "value: <scalar>".
func FormatAsList(node any, opts ListOptions) string {
	var b strings.Builder

	switch v := node.(type) {
	case []any:
		b.WriteString(formatArrayAsList(v, opts))
	case map[string]any:
		b.WriteString(formatMapAsList(v, "", opts))
	default:
		b.WriteString(listLine("value", Stringify(node), "", opts.NoColor))
	}

	return b.String()
}

func formatArrayAsList(arr []any, opts ListOptions) string {
	var b strings.Builder
	for i, item := range arr {
		header := fmt.Sprintf("[%d]", i)
		if isObjectType(item) {
			if opts.NoColor {
				b.WriteString(header + "\n")
			} else {
				b.WriteString(keyStyle.Render(header) + "\n")
			}
			b.WriteString(formatMapAsList(item.(map[string]any), "  ", opts))
			continue
		}
		b.WriteString(listLine(header, Stringify(item), "", opts.NoColor))
	}
	return b.String()
}

func formatMapAsList(m map[string]any, indent string, opts ListOptions) string {
	var b strings.Builder
	for _, k := range SortedKeys(m, opts.SortOrder) {
		v := m[k]
		switch child := v.(type) {
		case map[string]any:
			if opts.NoColor {
				b.WriteString(indent + k + "\n")
			} else {
				b.WriteString(indent + keyStyle.Render(k) + "\n")
			}
			b.WriteString(formatMapAsList(child, indent+"  ", opts))
		default:
			b.WriteString(listLine(k, Stringify(v), indent, opts.NoColor))
		}
	}
	return b.String()
}

func listLine(key, value, indent string, noColor bool) string {
	if noColor {
		return indent + key + ": " + value + "\n"
	}
	return indent + keyStyle.Render(key) + ": " + valueStyle.Render(value) + "\n"
}
