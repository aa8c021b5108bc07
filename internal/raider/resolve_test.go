package raider

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"package": map[string]any{
			"name":    "tomlraider",
			"version": "1.0.0",
		},
		"tool": map[string]any{
			"pdm": map[string]any{
				"dev-dependencies": map[string]any{
					"dev": []any{"ruff", "pre-commit"},
				},
			},
		},
		"numbers": []any{int64(1), int64(2), int64(3)},
		"matrix":  []any{[]any{"a", "b"}, []any{"c"}},
	}
}

func TestResolveScalar(t *testing.T) {
	got, err := Lookup(sampleDoc(), "package.version")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if got != "1.0.0" {
		t.Fatalf("Lookup = %v, want %q", got, "1.0.0")
	}
}

func TestResolveArrayElement(t *testing.T) {
	got, err := Lookup(sampleDoc(), "tool.pdm.dev-dependencies.dev[1]")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if got != "pre-commit" {
		t.Fatalf("Lookup = %v, want %q", got, "pre-commit")
	}
}

func TestResolveNestedIndices(t *testing.T) {
	got, err := Lookup(sampleDoc(), "matrix[0][1]")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if got != "b" {
		t.Fatalf("Lookup = %v, want %q", got, "b")
	}
}

func TestResolveRoot(t *testing.T) {
	doc := sampleDoc()
	got, err := Lookup(doc, ".")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("Lookup(.) did not return the document root")
	}
}

func TestResolveKeyNotFound(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": int64(1)}}
	_, err := Lookup(doc, "a.c")
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if rerr.Kind != ErrKeyNotFound {
		t.Fatalf("kind = %v, want KeyNotFound", rerr.Kind)
	}
	if rerr.Resolved.String() != "a" {
		t.Fatalf("resolved prefix = %q, want %q", rerr.Resolved.String(), "a")
	}
	if rerr.Segment.(Key) != Key("c") {
		t.Fatalf("failing segment = %v, want key c", rerr.Segment)
	}
}

func TestResolveIndexOutOfRange(t *testing.T) {
	doc := map[string]any{"a": []any{int64(1), int64(2), int64(3)}}
	_, err := Lookup(doc, "a[5]")
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if rerr.Kind != ErrIndexOutOfRange {
		t.Fatalf("kind = %v, want IndexOutOfRange", rerr.Kind)
	}
	if rerr.Segment.(Index) != Index(5) {
		t.Fatalf("failing index = %v, want 5", rerr.Segment)
	}
	if rerr.Length != 3 {
		t.Fatalf("length = %d, want 3", rerr.Length)
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected string
		actual   string
	}{
		{"key into string", "a.b", "table", "string"},
		{"index into string", "a[0]", "array", "string"},
		{"index into table", "t[0]", "array", "table"},
	}
	doc := map[string]any{
		"a": "x",
		"t": map[string]any{"k": "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(doc, tt.expr)
			var rerr *Error
			if !errors.As(err, &rerr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if rerr.Kind != ErrTypeMismatch {
				t.Fatalf("kind = %v, want TypeMismatch", rerr.Kind)
			}
			if rerr.Expected != tt.expected || rerr.Actual != tt.actual {
				t.Fatalf("expected/actual = %s/%s, want %s/%s", rerr.Expected, rerr.Actual, tt.expected, tt.actual)
			}
		})
	}
}

// A missing key must always surface as KeyNotFound, never TypeMismatch,
// and repeated resolution of the same inputs must be identical.
func TestResolveDeterminism(t *testing.T) {
	doc := sampleDoc()
	p, err := ParsePath("tool.pdm.dev-dependencies.dev[0]")
	if err != nil {
		t.Fatalf("ParsePath error: %v", err)
	}
	first, err := Resolve(doc, p)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Resolve(doc, p)
		if err != nil {
			t.Fatalf("Resolve error on pass %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Resolve not deterministic: %v != %v", first, again)
		}
	}
}

func TestResolveDoesNotMutate(t *testing.T) {
	doc := sampleDoc()
	want := sampleDoc()
	if _, err := Lookup(doc, "package.name"); err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if _, err := Lookup(doc, "package.missing"); err == nil {
		t.Fatal("expected lookup failure")
	}
	if !reflect.DeepEqual(doc, want) {
		t.Fatal("document mutated by resolution")
	}
}

func TestErrorMessages(t *testing.T) {
	doc := map[string]any{"a": []any{int64(1)}}
	_, err := Lookup(doc, "a[5]")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error message")
	}
	for _, want := range []string{"5", "length 1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message %q missing %q", msg, want)
		}
	}
}
