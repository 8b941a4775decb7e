package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

type contextKey struct{}

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns it unchanged otherwise. The map is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(mergeFields(nil, fields))
	}
	return logger
}

// ContextWithFields stores fields on ctx, merged over any already present.
// Loggers bound with WithContext add them to every entry, which is how the
// command type reaches requirement service logs.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, mergeFields(contextFields(ctx), fields))
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return nil
	}
	return mergeFields(nil, fields)
}

func contextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextKey{}).(map[string]any)
	return fields
}

func mergeFields(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	maps.Copy(out, base)
	maps.Copy(out, overlay)
	return out
}
