package settings

import (
	"context"
)

type runContextKey struct{}

// IntoContext attaches the run settings to the context.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, s)
}

// FromContext retrieves the run settings from the context. The second
// return value is false when no settings were attached.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey{}).(*Run)
	return s, ok
}
