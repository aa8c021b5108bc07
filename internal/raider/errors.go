package raider

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrorKind classifies lookup failures so callers can map them to exit
// codes without string matching.
type ErrorKind int

const (
	// ErrInvalidPathSyntax reports a malformed path expression.
	ErrInvalidPathSyntax ErrorKind = iota
	// ErrKeyNotFound reports a key segment absent from its table.
	ErrKeyNotFound
	// ErrIndexOutOfRange reports an index segment outside its array.
	ErrIndexOutOfRange
	// ErrTypeMismatch reports a segment applied to the wrong node kind.
	ErrTypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidPathSyntax:
		return "InvalidPathSyntax"
	case ErrKeyNotFound:
		return "KeyNotFound"
	case ErrIndexOutOfRange:
		return "IndexOutOfRange"
	case ErrTypeMismatch:
		return "TypeMismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the structured failure returned by ParsePath and Resolve.
// Resolution errors carry the prefix that resolved successfully so the
// caller can pinpoint the failing step without re-walking the document.
type Error struct {
	Kind     ErrorKind
	Resolved Path    // prefix resolved before the failure (resolution errors)
	Segment  Segment // segment that failed (resolution errors)
	Length   int     // array length (ErrIndexOutOfRange)
	Expected string  // node kind required by the segment (ErrTypeMismatch)
	Actual   string  // node kind actually found (ErrTypeMismatch)
	Expr     string  // raw expression (ErrInvalidPathSyntax)
	Pos      int     // byte offset in Expr (ErrInvalidPathSyntax)
	Detail   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidPathSyntax:
		return fmt.Sprintf("invalid path %q: %s (at offset %d)", e.Expr, e.Detail, e.Pos)
	case ErrKeyNotFound:
		return fmt.Sprintf("key %q not found in table at %q", string(e.Segment.(Key)), e.Resolved.String())
	case ErrIndexOutOfRange:
		return fmt.Sprintf("index %d out of range at %q (length %d)", int(e.Segment.(Index)), e.Resolved.String(), e.Length)
	case ErrTypeMismatch:
		return fmt.Sprintf("cannot apply %s to %s at %q (expected %s)", describeSegment(e.Segment), e.Actual, e.Resolved.String(), e.Expected)
	default:
		return e.Detail
	}
}

func describeSegment(seg Segment) string {
	switch s := seg.(type) {
	case Key:
		return fmt.Sprintf("key %q", string(s))
	case Index:
		return fmt.Sprintf("index [%d]", int(s))
	default:
		return "segment"
	}
}

func syntaxErrorf(expr string, pos int, format string, args ...any) *Error {
	return &Error{
		Kind:   ErrInvalidPathSyntax,
		Expr:   expr,
		Pos:    pos,
		Detail: fmt.Sprintf(format, args...),
	}
}

// NodeKind names the TOML kind of a decoded node for error messages.
func NodeKind(node any) string {
	switch node.(type) {
	case map[string]any:
		return "table"
	case []any:
		return "array"
	case string:
		return "string"
	case int64, int:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case time.Time, toml.LocalDate, toml.LocalDateTime, toml.LocalTime:
		return "date-time"
	default:
		return fmt.Sprintf("%T", node)
	}
}
