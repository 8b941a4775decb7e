package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

type testMessage struct{}

func (testMessage) Type() string { return "reqdocs.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "reqdocs.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

type fieldsMessage struct {
	Title string
}

func (fieldsMessage) Type() string { return "reqdocs.test.fields" }

func TestHandlerMessageFieldsReachLogger(t *testing.T) {
	logger := &fieldCaptureLogger{}
	h := NewHandler(func(ctx context.Context, msg fieldsMessage) error {
		return nil
	},
		WithLogger[fieldsMessage](logger),
		WithOperation[fieldsMessage]("requirements.create"),
		WithMessageFields(func(msg fieldsMessage) map[string]any {
			return map[string]any{"title": msg.Title}
		}),
	)

	if err := h.Execute(context.Background(), fieldsMessage{Title: "Login"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(logger.fields) != 1 {
		t.Fatalf("expected one field set, got %d", len(logger.fields))
	}
	fields := logger.fields[0]
	if fields["title"] != "Login" || fields["operation"] != "requirements.create" || fields["command"] != "reqdocs.test.fields" {
		t.Fatalf("unexpected fields %#v", fields)
	}
	if len(logger.info) != 1 || logger.info[0] != "command.execute.success" {
		t.Fatalf("expected success log, got %#v", logger.info)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var infos []TelemetryInfo
	execErr := errors.New("boom")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return execErr
	}, WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}))

	err := h.Execute(context.Background(), testMessage{})
	if !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected telemetry to run once, got %d", len(infos))
	}
	if infos[0].Status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %s", infos[0].Status)
	}
	if infos[0].Command != "reqdocs.test.message" {
		t.Fatalf("unexpected command %q", infos[0].Command)
	}
	if !goerrors.IsCategory(infos[0].Error, goerrors.CategoryCommand) {
		t.Fatalf("expected telemetry error to be categorised, got %v", infos[0].Error)
	}
}

func TestDefaultTelemetryLogsSuccess(t *testing.T) {
	logger := &fieldCaptureLogger{}
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	}, WithTelemetry(DefaultTelemetry[testMessage](logger)))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(logger.info) != 1 || logger.info[0] != "command.execute.success" {
		t.Fatalf("expected telemetry success log, got %#v", logger.info)
	}
}

func TestHandlerErrorsCarryCodeAndCommand(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
		code string
	}{
		{"validation", func() error {
			return NewHandler(func(context.Context, invalidMessage) error { return nil }).
				Execute(context.Background(), invalidMessage{})
		}, CodeValidationFailed},
		{"execution", func() error {
			return NewHandler(func(context.Context, testMessage) error { return errors.New("disk full") }).
				Execute(context.Background(), testMessage{})
		}, CodeExecutionFailed},
		{"cancelled", func() error {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return NewHandler(func(context.Context, testMessage) error { return nil }).Execute(ctx, testMessage{})
		}, CodeContextCanceled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var typed *goerrors.Error
			if !errors.As(tc.run(), &typed) {
				t.Fatal("expected *goerrors.Error")
			}
			if typed.TextCode != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, typed.TextCode)
			}
			if typed.Metadata["command"] == "" || typed.Metadata["command"] == nil {
				t.Fatalf("expected command metadata, got %#v", typed.Metadata)
			}
		})
	}
}

func TestHandlerAnnotatesContextWithCommand(t *testing.T) {
	var seen map[string]any
	h := NewHandler(func(ctx context.Context, _ testMessage) error {
		seen = logging.ContextFields(ctx)
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seen["command"] != "reqdocs.test.message" {
		t.Fatalf("expected command on context, got %#v", seen)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	original := goerrors.New("template missing", goerrors.CategoryNotFound)
	err := NewHandler(func(context.Context, testMessage) error { return original }).
		Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected NotFound category to survive, got %v", err)
	}
}

type fieldCaptureLogger struct {
	fields []map[string]any
	info   []string
	errors []string
}

func (l *fieldCaptureLogger) Trace(string, ...any) {}
func (l *fieldCaptureLogger) Debug(string, ...any) {}
func (l *fieldCaptureLogger) Info(msg string, _ ...any) {
	l.info = append(l.info, msg)
}
func (l *fieldCaptureLogger) Warn(string, ...any) {}
func (l *fieldCaptureLogger) Error(msg string, _ ...any) {
	l.errors = append(l.errors, msg)
}
func (l *fieldCaptureLogger) Fatal(string, ...any) {}

func (l *fieldCaptureLogger) WithFields(fields map[string]any) interfaces.Logger {
	l.fields = append(l.fields, fields)
	return l
}

func (l *fieldCaptureLogger) WithContext(context.Context) interfaces.Logger { return l }
