// Package raider implements the property lookup engine: parsing of
// dotted/indexed path expressions and their resolution against a parsed
// TOML document tree.
package raider

import (
	"strconv"
	"strings"
)

// PathSeparator is the key separator in property path expressions.
const PathSeparator = "."

// Document is the root of a parsed TOML tree. TOML documents always
// decode to a table at the top level.
type Document = map[string]any

// Segment is one step of a parsed path: either a table key or an array index.
type Segment interface {
	segment()
	String() string
}

// Key is a table lookup segment.
type Key string

func (Key) segment() {}

// String renders the key as it would appear in a path expression. Keys
// containing characters outside the bare-key set are quoted; single
// quotes are used when the key itself contains a double quote.
func (k Key) String() string {
	if isBareKey(string(k)) {
		return string(k)
	}
	if strings.ContainsRune(string(k), '"') {
		return "'" + string(k) + "'"
	}
	return `"` + string(k) + `"`
}

// Index is an array lookup segment.
type Index int

func (Index) segment() {}

func (i Index) String() string {
	return "[" + strconv.Itoa(int(i)) + "]"
}

// Path is an ordered sequence of segments. A nil or empty Path addresses
// the document root.
type Path []Segment

// String re-serializes the path. Parsing the result yields the same
// segment sequence.
func (p Path) String() string {
	if len(p) == 0 {
		return PathSeparator
	}
	var b strings.Builder
	for i, seg := range p {
		if _, isKey := seg.(Key); isKey && i > 0 {
			b.WriteString(PathSeparator)
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// ParsePath parses a property path expression into segments.
//
// Grammar: segments are separated by '.'; a segment is a bare key
// ([A-Za-z0-9_-]+) or a quoted key (single or double quotes, embedded
// dots and brackets taken literally), optionally followed by one or
// more '[n]' array index suffixes applied left to right.
//
// The single expression "." addresses the document root. Any other
// empty segment (leading, trailing, or doubled dot) is a syntax error,
// as are unterminated quotes, unbalanced brackets, negative or
// non-numeric indices, and bare text adjacent to a quoted key.
func ParsePath(input string) (Path, error) {
	if input == "" {
		return nil, syntaxErrorf(input, 0, "empty path")
	}
	if input == PathSeparator {
		return Path{}, nil
	}

	var out Path
	i := 0
	for {
		seg, next, err := parseSegment(input, i)
		if err != nil {
			return nil, err
		}
		out = append(out, seg...)
		if next >= len(input) {
			return out, nil
		}
		if input[next] != '.' {
			return nil, syntaxErrorf(input, next, "unexpected character %q", input[next])
		}
		i = next + 1
		if i >= len(input) {
			return nil, syntaxErrorf(input, next, "trailing path separator")
		}
	}
}

// parseSegment parses one key with its index suffixes starting at pos.
// It returns the segments and the offset of the first unconsumed byte.
func parseSegment(input string, pos int) ([]Segment, int, error) {
	if pos >= len(input) {
		return nil, pos, syntaxErrorf(input, pos, "empty segment")
	}

	var segs []Segment
	i := pos

	switch c := input[i]; {
	case c == '"' || c == '\'':
		name, end, err := parseQuotedKey(input, i)
		if err != nil {
			return nil, i, err
		}
		segs = append(segs, Key(name))
		i = end
	case isBareKeyByte(c):
		j := i
		for j < len(input) && isBareKeyByte(input[j]) {
			j++
		}
		segs = append(segs, Key(input[i:j]))
		i = j
	case c == '.':
		return nil, i, syntaxErrorf(input, i, "empty segment")
	case c == '[':
		return nil, i, syntaxErrorf(input, i, "index without a key")
	default:
		return nil, i, syntaxErrorf(input, i, "unexpected character %q", c)
	}

	// Quoted text immediately after a bare key (or vice versa) is
	// ambiguous and rejected rather than interpreted leniently.
	if i < len(input) && (input[i] == '"' || input[i] == '\'') {
		return nil, i, syntaxErrorf(input, i, "mixed bare and quoted text in one segment")
	}
	if i < len(input) && isBareKeyByte(input[i]) {
		return nil, i, syntaxErrorf(input, i, "unexpected character %q after quoted key", input[i])
	}

	for i < len(input) && input[i] == '[' {
		idx, end, err := parseIndex(input, i)
		if err != nil {
			return nil, i, err
		}
		segs = append(segs, Index(idx))
		i = end
	}

	if i < len(input) && input[i] != '.' {
		return nil, i, syntaxErrorf(input, i, "unexpected character %q", input[i])
	}
	return segs, i, nil
}

// parseQuotedKey consumes a quoted key starting at the opening quote.
func parseQuotedKey(input string, pos int) (string, int, error) {
	quote := input[pos]
	end := strings.IndexByte(input[pos+1:], quote)
	if end == -1 {
		return "", pos, syntaxErrorf(input, pos, "unterminated quoted key")
	}
	return input[pos+1 : pos+1+end], pos + end + 2, nil
}

// parseIndex consumes a '[n]' suffix starting at the opening bracket.
func parseIndex(input string, pos int) (int, int, error) {
	close := strings.IndexByte(input[pos:], ']')
	if close == -1 {
		return 0, pos, syntaxErrorf(input, pos, "unbalanced bracket")
	}
	body := input[pos+1 : pos+close]
	if body == "" {
		return 0, pos, syntaxErrorf(input, pos, "empty index")
	}
	idx, err := strconv.Atoi(body)
	if err != nil {
		return 0, pos, syntaxErrorf(input, pos, "malformed index %q", body)
	}
	if idx < 0 {
		return 0, pos, syntaxErrorf(input, pos, "negative index %d", idx)
	}
	return idx, pos + close + 1, nil
}

func isBareKeyByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBareKeyByte(s[i]) {
			return false
		}
	}
	return true
}
