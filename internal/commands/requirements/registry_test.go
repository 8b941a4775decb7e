package requirementscmd

import (
	"context"
	"errors"
	"testing"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-reqdocs/internal/commands"
	"github.com/goliatone/go-reqdocs/internal/commands/fixtures"
	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

func TestRegisterRequirementCommandsHandlerOptionsApplied(t *testing.T) {
	service := &stubRequirementService{}
	applied := map[string]bool{}

	_, err := RegisterRequirementCommands(nil, service, nil,
		WithCreateHandlerOptions(func(h *commands.Handler[CreateRequirementCommand]) {
			applied["create"] = true
		}),
		WithUpdateHandlerOptions(func(h *commands.Handler[UpdateIndexCommand]) {
			applied["update"] = true
		}),
		WithListHandlerOptions(func(h *commands.Handler[ListRequirementsCommand]) {
			applied["list"] = true
		}),
		WithPreviewHandlerOptions(func(h *commands.Handler[PreviewIndexCommand]) {
			applied["preview"] = true
		}),
	)
	if err != nil {
		t.Fatalf("register requirement commands: %v", err)
	}
	for _, name := range []string{"create", "update", "list", "preview"} {
		if !applied[name] {
			t.Fatalf("expected %s handler options applied", name)
		}
	}
}

func TestRegisterRequirementCommandsRegistersHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	service := &stubRequirementService{}

	set, err := RegisterRequirementCommands(reg, service, nil)
	if err != nil {
		t.Fatalf("register requirement commands: %v", err)
	}
	if set == nil || set.Create == nil || set.Update == nil || set.List == nil || set.Preview == nil {
		t.Fatalf("expected all handlers built, got %#v", set)
	}
	if len(reg.Handlers) != 4 {
		t.Fatalf("expected four handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.Create {
		t.Fatalf("expected create handler registered first, got %#v", reg.Handlers[0])
	}
	want := []string{
		"*requirementscmd.CreateRequirementHandler",
		"*requirementscmd.UpdateIndexHandler",
		"*requirementscmd.ListRequirementsHandler",
		"*requirementscmd.PreviewIndexHandler",
	}
	for i, got := range reg.HandlerTypes() {
		if got != want[i] {
			t.Fatalf("handler %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestRegisterRequirementCommandsReleasesSubscriptionsOnFailure(t *testing.T) {
	dispatcher := fixtures.NewRecordingDispatcher()
	dispatcher.Err = errors.New("dispatcher closed")
	dispatcher.FailAfter = 2

	set, err := RegisterRequirementCommands(nil, &stubRequirementService{}, nil, WithDispatcher(dispatcher))
	if !errors.Is(err, dispatcher.Err) {
		t.Fatalf("expected dispatcher error, got %v", err)
	}
	if set != nil {
		t.Fatalf("expected no handler set on failure, got %#v", set)
	}
	if len(dispatcher.Subscriptions) != 2 {
		t.Fatalf("expected two subscriptions before failure, got %d", len(dispatcher.Subscriptions))
	}
	if active := dispatcher.Active(); active != 0 {
		t.Fatalf("expected partial subscriptions released, %d still active", active)
	}
}

func TestRegisterRequirementCommandsSubscribesDispatcher(t *testing.T) {
	dispatcher := fixtures.NewRecordingDispatcher()
	service := &stubRequirementService{}

	set, err := RegisterRequirementCommands(nil, service, nil, WithDispatcher(dispatcher))
	if err != nil {
		t.Fatalf("register requirement commands: %v", err)
	}
	if len(dispatcher.Handlers) != 4 || len(set.Subscriptions) != 4 {
		t.Fatalf("expected four subscriptions, got %d handlers and %d subscriptions", len(dispatcher.Handlers), len(set.Subscriptions))
	}

	set.Unsubscribe()
	for _, sub := range dispatcher.Subscriptions {
		if !sub.Unsubscribed {
			t.Fatalf("expected subscription for %T released", sub.Handler)
		}
	}
}

func TestRegisterRequirementCommandsPropagatesRegistryError(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")

	if _, err := RegisterRequirementCommands(reg, &stubRequirementService{}, nil); !errors.Is(err, reg.Err) {
		t.Fatalf("expected registry error, got %v", err)
	}
}

func TestRegisterRequirementCommandsNilServiceError(t *testing.T) {
	if _, err := RegisterRequirementCommands(nil, nil, nil); err == nil {
		t.Fatal("expected error when service nil")
	}
}

func TestDispatcherRoutesCreateCommand(t *testing.T) {
	service := &stubRequirementService{
		createResult: &interfaces.CreateResult{Created: true, Path: "docs/requirements/req-login.md"},
	}

	set, err := RegisterRequirementCommands(nil, service, nil, WithDispatcher(Dispatcher{}))
	if err != nil {
		t.Fatalf("register requirement commands: %v", err)
	}
	defer set.Unsubscribe()

	if err := DispatchCommand(context.Background(), CreateRequirementCommand{Title: "Login", Context: "Auth"}); err != nil {
		t.Fatalf("dispatch create: %v", err)
	}
	if len(service.createCalls) != 1 {
		t.Fatalf("expected one create call through dispatcher, got %d", len(service.createCalls))
	}
}

func TestDispatcherRejectsUnknownHandler(t *testing.T) {
	if _, err := (Dispatcher{}).RegisterCommand(struct{}{}); err == nil {
		t.Fatal("expected error for unsupported handler")
	}
}

func TestRegisterIndexCronRegistersHandler(t *testing.T) {
	service := &stubRequirementService{
		indexResult: &interfaces.IndexResult{Path: "docs/requirements.md"},
	}
	handler := NewUpdateIndexHandler(service, logging.NoOp(), nil)
	recorder := fixtures.NewCronRecorder()
	cfg := command.HandlerConfig{Expression: "@every 5m"}

	if err := RegisterIndexCron(recorder.Registrar(), handler, cfg); err != nil {
		t.Fatalf("register index cron: %v", err)
	}
	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.Registrations))
	}
	registration := recorder.Registrations[0]
	if registration.Config.Expression != cfg.Expression {
		t.Fatalf("expected expression %q, got %q", cfg.Expression, registration.Config.Expression)
	}

	run, ok := registration.Handler.(func() error)
	if !ok {
		t.Fatalf("expected func() error handler, got %T", registration.Handler)
	}
	if err := run(); err != nil {
		t.Fatalf("cron handler: %v", err)
	}
	if service.updateCalls != 1 {
		t.Fatalf("expected cron run to update index, got %d calls", service.updateCalls)
	}
}

func TestRegisterIndexCronNilInputs(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	if err := RegisterIndexCron(recorder.Registrar(), nil, command.HandlerConfig{}); err != nil {
		t.Fatalf("expected nil error when handler nil, got %v", err)
	}
	if err := RegisterIndexCron(nil, NewUpdateIndexHandler(&stubRequirementService{}, nil, nil), command.HandlerConfig{}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no registrations, got %d", len(recorder.Registrations))
	}
}

func TestRegisterIndexCronPropagatesRegistrarError(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	failure := errors.New("scheduler stopped")
	recorder.Fail(failure)

	handler := NewUpdateIndexHandler(&stubRequirementService{}, nil, nil)
	err := RegisterIndexCron(recorder.Registrar(), handler, command.HandlerConfig{Expression: "@hourly"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected registrar error, got %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no registrations, got %d", len(recorder.Registrations))
	}
}

type singleLoggerProvider struct {
	logger interfaces.Logger
}

func (p singleLoggerProvider) GetLogger(string) interfaces.Logger { return p.logger }

func TestRegisterRequirementCommandsTagsLayout(t *testing.T) {
	logger := &captureLogger{}
	_, err := RegisterRequirementCommands(nil, &stubRequirementService{}, singleLoggerProvider{logger: logger},
		WithLayout("docs/requirements", "docs/requirements.md"),
	)
	if err != nil {
		t.Fatalf("register requirement commands: %v", err)
	}

	for _, fields := range logger.fields {
		if fields["requirements_dir"] == "docs/requirements" && fields["index_path"] == "docs/requirements.md" {
			return
		}
	}
	t.Fatalf("expected layout fields on the command logger, got %#v", logger.fields)
}
