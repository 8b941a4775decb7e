package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// Module names handed to LoggerProvider.GetLogger. Providers that support
// focus filtering match on these.
const (
	rootModule         = "reqdocs"
	requirementsModule = rootModule + ".requirements"
	bootstrapModule    = rootModule + ".bootstrap"
	watchModule        = rootModule + ".watch"
)

const (
	fieldModule            = "module"
	fieldRequirementPath   = "requirement_path"
	fieldRequirementID     = "requirement_id"
	fieldRequirementAction = "action"
)

// ModuleLogger returns the provider's logger for module tagged with a module
// field. A nil provider, or one returning nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{fieldModule: module})
}

func RequirementsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, requirementsModule)
}

func BootstrapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, bootstrapModule)
}

func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithRequirementContext tags logger with the requirement file, id and action
// being worked on. Blank values are left out.
func WithRequirementContext(logger interfaces.Logger, path, id, action string) interfaces.Logger {
	fields := make(map[string]any, 3)
	for key, value := range map[string]string{
		fieldRequirementPath:   path,
		fieldRequirementID:     id,
		fieldRequirementAction: action,
	} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger   { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
