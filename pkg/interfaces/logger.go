package interfaces

import "context"

// Logger is the leveled logger every reqdocs component writes to. Args are
// alternating key/value pairs. The method set matches go-logger's glog.Logger
// minus field binding, which lives on FieldsLogger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry persistent fields.
// Callers go through logging.WithFields rather than asserting it themselves.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out a logger per module name, e.g. "reqdocs.watch".
type LoggerProvider interface {
	GetLogger(name string) Logger
}
