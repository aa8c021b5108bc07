// Package logger provides the process-wide structured logger: a zap
// core writing JSON to stderr, exposed as a logr.Logger via zapr and
// propagated through context.Context.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gravures/tomlraider/pkg/settings"
)

// Structured field keys used across the tool.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
	PropertyKey    = "property"
	SourceKey      = "source"
)

type loggerContextKey struct{}

var (
	setupOnce sync.Once

	// zapGlobal is kept for Sync; all logging goes through logrGlobal.
	zapGlobal  *zap.Logger
	logrGlobal *logr.Logger

	noopLogger = logr.Discard()
)

// Get initializes the global logger on first call and returns it.
// logLevel maps directly onto zapcore.Level, so -1 enables debug.
func Get(logLevel int8) *logr.Logger {
	setupOnce.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		fields := []zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
		}
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			fields = append(fields, zap.String(GoVersionKey, buildInfo.GoVersion))
		}

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
		).With(fields)

		zapGlobal = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WithFatalHook(zapcore.WriteThenPanic),
		)

		gl := zapr.NewLogger(zapGlobal)
		logrGlobal = &gl
	})
	if logrGlobal == nil {
		return &noopLogger
	}
	return logrGlobal
}

// WithLogger attaches log to the context. Attaching the logger already
// present returns ctx unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger attached to ctx, falling back to the
// global logger, then to a no-op logger so callers never get nil.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	if logrGlobal != nil {
		return logrGlobal
	}
	return &noopLogger
}

// Sync flushes buffered log entries. Call it once before the process
// exits.
func Sync() {
	if zapGlobal == nil {
		return
	}
	if err := zapGlobal.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
	}
}

// isIgnorableSyncError reports whether err is one of the sync failures
// expected when stderr is a pipe or TTY. Windows consoles wrap
// ERROR_INVALID_HANDLE in *os.PathError, which does not compare equal
// to syscall.EINVAL, hence the string match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetGlobalLogger returns the global logger, or a no-op logger when Get
// has not run yet.
func GetGlobalLogger() *logr.Logger {
	if logrGlobal != nil {
		return logrGlobal
	}
	return &noopLogger
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &noopLogger
}

// WithValues returns a new logger with the key-value pairs attached.
// The original logger is left untouched.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
