package logger

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
)

func TestGetReturnsStableInstance(t *testing.T) {
	first := Get(0)
	if first == nil {
		t.Fatal("Get returned nil")
	}
	if second := Get(0); second != first {
		t.Error("Get should return the same instance on subsequent calls")
	}
}

func TestGetFallsBackToNoop(t *testing.T) {
	orig := logrGlobal
	logrGlobal = nil
	defer func() { logrGlobal = orig }()

	if Get(0) == nil {
		t.Fatal("Get should return a no-op logger when the global is nil")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	lgr := Get(0)
	ctx := WithLogger(context.Background(), lgr)

	if got := FromContext(ctx); got != lgr {
		t.Error("FromContext should return the logger stored by WithLogger")
	}
	// Re-attaching the same logger must not allocate a new context.
	if again := WithLogger(ctx, lgr); again != ctx {
		t.Error("WithLogger should return the original context for a repeat attach")
	}
}

func TestWithLoggerReplacesDifferentLogger(t *testing.T) {
	ctx := WithLogger(context.Background(), Get(0))
	other := logr.Discard()

	ctx = WithLogger(ctx, &other)
	if got := FromContext(ctx); got != &other {
		t.Error("WithLogger should replace a different logger")
	}
}

func TestFromContextFallbacks(t *testing.T) {
	global := Get(0)
	if got := FromContext(context.Background()); got != global {
		t.Error("FromContext without a context logger should return the global logger")
	}

	orig := logrGlobal
	logrGlobal = nil
	defer func() { logrGlobal = orig }()

	if got := FromContext(context.Background()); got != &noopLogger {
		t.Error("FromContext without any logger should return the no-op logger")
	}
}

func TestSyncToleratesNilGlobal(t *testing.T) {
	orig := zapGlobal
	zapGlobal = nil
	defer func() { zapGlobal = orig }()

	Sync() // must not panic
}

func TestGetGlobalLoggerFallback(t *testing.T) {
	orig := logrGlobal
	defer func() { logrGlobal = orig }()

	mock := logr.Discard()
	logrGlobal = &mock
	if got := GetGlobalLogger(); got != &mock {
		t.Error("GetGlobalLogger should return the configured global logger")
	}

	logrGlobal = nil
	if got := GetGlobalLogger(); got != &noopLogger {
		t.Error("GetGlobalLogger should fall back to the no-op logger")
	}
}

func TestGetNoopLoggerDiscards(t *testing.T) {
	lgr := GetNoopLogger()
	if lgr != &noopLogger {
		t.Fatal("GetNoopLogger should return the shared no-op logger")
	}
	lgr.Info("discarded")
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	lgr := Get(0)
	augmented := WithValues(lgr, "key", "value")
	if augmented == nil {
		t.Fatal("WithValues returned nil")
	}
	if augmented == lgr {
		t.Error("WithValues should not return the original logger pointer")
	}
}
