package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if fields == nil {
		fields = map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	for name, provider := range map[string]interfaces.LoggerProvider{
		"nil provider": nil,
		"nil logger":   &stubProvider{},
	} {
		t.Run(name, func(t *testing.T) {
			logger := ModuleLogger(provider, "reqdocs.test")
			if _, ok := logger.(noopLogger); !ok {
				t.Fatalf("expected noopLogger fallback, got %T", logger)
			}
			logger = WithFields(logger.WithContext(context.Background()), map[string]any{"requirement_id": "1"})
			logger.Debug("noop")
		})
	}
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, requirementsModule)

	if len(provider.requested) != 1 || provider.requested[0] != requirementsModule {
		t.Fatalf("expected module %s, got %v", requirementsModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}

	if got, ok := rec.fields[0]["module"]; !ok || got != requirementsModule {
		t.Fatalf("expected module field %s, got %v", requirementsModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "  ")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestBootstrapLoggerRequestsBootstrapModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = BootstrapLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != bootstrapModule {
		t.Fatalf("expected bootstrap module request, got %v", provider.requested)
	}
}

func TestWatchLoggerRequestsWatchModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = WatchLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != watchModule {
		t.Fatalf("expected watch module request, got %v", provider.requested)
	}
}

func TestWithRequirementContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithRequirementContext(rec, " req-login.md ", "", "create")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldRequirementPath] != "req-login.md" {
		t.Fatalf("expected trimmed path, got %v", fields[fieldRequirementPath])
	}
	if _, ok := fields[fieldRequirementID]; ok {
		t.Fatalf("expected empty id to be skipped, got %v", fields)
	}
	if fields[fieldRequirementAction] != "create" {
		t.Fatalf("expected action create, got %v", fields[fieldRequirementAction])
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["a"] = 99
	if again := ContextFields(ctx); again["a"] != 1 {
		t.Fatalf("expected a copy to be returned, got %v", again)
	}
}
