package requirementscmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-reqdocs/internal/commands"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// HandlerSet groups the requirement command handlers produced by RegisterRequirementCommands.
type HandlerSet struct {
	Create  *CreateRequirementHandler
	Update  *UpdateIndexHandler
	List    *ListRequirementsHandler
	Preview *PreviewIndexHandler

	Subscriptions []commands.CommandSubscription
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	output      io.Writer
	dispatcher  commands.CommandDispatcher
	layout      commands.Layout
	createOpts  []commands.HandlerOption[CreateRequirementCommand]
	updateOpts  []commands.HandlerOption[UpdateIndexCommand]
	listOpts    []commands.HandlerOption[ListRequirementsCommand]
	previewOpts []commands.HandlerOption[PreviewIndexCommand]
}

// WithOutput sets the writer handlers report to. Defaults to io.Discard.
func WithOutput(out io.Writer) Option {
	return func(cfg *options) {
		cfg.output = out
	}
}

// WithLayout tags handler logs with the requirements directory and index path.
func WithLayout(requirementsDir, indexPath string) Option {
	return func(cfg *options) {
		cfg.layout = commands.Layout{RequirementsDir: requirementsDir, IndexPath: indexPath}
	}
}

// WithDispatcher subscribes every constructed handler to d.
func WithDispatcher(d commands.CommandDispatcher) Option {
	return func(cfg *options) {
		cfg.dispatcher = d
	}
}

// WithCreateHandlerOptions forwards options to the CreateRequirementHandler constructor.
func WithCreateHandlerOptions(opts ...commands.HandlerOption[CreateRequirementCommand]) Option {
	return func(cfg *options) {
		cfg.createOpts = append(cfg.createOpts, opts...)
	}
}

// WithUpdateHandlerOptions forwards options to the UpdateIndexHandler constructor.
func WithUpdateHandlerOptions(opts ...commands.HandlerOption[UpdateIndexCommand]) Option {
	return func(cfg *options) {
		cfg.updateOpts = append(cfg.updateOpts, opts...)
	}
}

// WithListHandlerOptions forwards options to the ListRequirementsHandler constructor.
func WithListHandlerOptions(opts ...commands.HandlerOption[ListRequirementsCommand]) Option {
	return func(cfg *options) {
		cfg.listOpts = append(cfg.listOpts, opts...)
	}
}

// WithPreviewHandlerOptions forwards options to the PreviewIndexHandler constructor.
func WithPreviewHandlerOptions(opts ...commands.HandlerOption[PreviewIndexCommand]) Option {
	return func(cfg *options) {
		cfg.previewOpts = append(cfg.previewOpts, opts...)
	}
}

// RegisterRequirementCommands builds the requirement command handlers and registers them with
// the provided registry and, when configured, a dispatcher. A nil registry only builds the
// handlers.
func RegisterRequirementCommands(reg commands.CommandRegistry, service interfaces.RequirementService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("requirement command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "requirements", cfg.layout)

	set := &HandlerSet{
		Create:  NewCreateRequirementHandler(service, logger, cfg.output, cfg.createOpts...),
		Update:  NewUpdateIndexHandler(service, logger, cfg.output, cfg.updateOpts...),
		List:    NewListRequirementsHandler(service, logger, cfg.output, cfg.listOpts...),
		Preview: NewPreviewIndexHandler(service, logger, cfg.output, cfg.previewOpts...),
	}

	for _, handler := range []any{set.Create, set.Update, set.List, set.Preview} {
		if reg != nil {
			if err := reg.RegisterCommand(handler); err != nil {
				set.Unsubscribe()
				return nil, err
			}
		}
		if cfg.dispatcher != nil {
			sub, err := cfg.dispatcher.RegisterCommand(handler)
			if err != nil {
				set.Unsubscribe()
				return nil, err
			}
			if sub != nil {
				set.Subscriptions = append(set.Subscriptions, sub)
			}
		}
	}

	return set, nil
}

// Dispatcher adapts the go-command global dispatcher to commands.CommandDispatcher.
type Dispatcher struct{}

// RegisterCommand subscribes one of the requirement handlers.
func (Dispatcher) RegisterCommand(handler any) (commands.CommandSubscription, error) {
	switch h := handler.(type) {
	case *CreateRequirementHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *UpdateIndexHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *ListRequirementsHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *PreviewIndexHandler:
		return dispatcher.SubscribeCommand(h), nil
	default:
		return nil, fmt.Errorf("requirement dispatcher: unsupported handler %T", handler)
	}
}

// Unsubscribe releases every dispatcher subscription held by the set.
func (s *HandlerSet) Unsubscribe() {
	if s == nil {
		return
	}
	for _, sub := range s.Subscriptions {
		sub.Unsubscribe()
	}
	s.Subscriptions = nil
}

// RegisterIndexCron schedules periodic index refreshes through the supplied registrar. The
// handler runs with a background context.
func RegisterIndexCron(reg commands.CronRegistrar, handler *UpdateIndexHandler, cfg command.HandlerConfig) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), UpdateIndexCommand{})
	})
}

// DispatchCommand sends msg through the go-command dispatcher to the subscribed handler.
func DispatchCommand[T command.Message](ctx context.Context, msg T) error {
	return dispatcher.Dispatch(ctx, msg)
}
