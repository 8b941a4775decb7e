package reqdocs

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/internal/logging/console"
	"github.com/goliatone/go-reqdocs/internal/logging/gologger"
	"github.com/goliatone/go-reqdocs/internal/requirements"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// RequirementService exports the requirement workflow contract.
type RequirementService = interfaces.RequirementService

// Requirement exports the scanned requirement record.
type Requirement = interfaces.Requirement

// CreateOptions exports the create input.
type CreateOptions = interfaces.CreateOptions

// CreateResult exports the create outcome.
type CreateResult = interfaces.CreateResult

// IndexResult exports the index rewrite outcome.
type IndexResult = interfaces.IndexResult

// Module represents the top level reqdocs runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	service  *requirements.Service
}

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider  interfaces.LoggerProvider
	parser    interfaces.MarkdownParser
	logWriter io.Writer
}

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithMarkdownParser overrides the parser used to render previews.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(o *moduleOptions) {
		o.parser = parser
	}
}

// WithLogWriter redirects console provider output. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(o *moduleOptions) {
		o.logWriter = w
	}
}

// New validates cfg and wires the requirement service.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := NewLoggerProvider(cfg.Logging, options.logWriter)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	serviceOpts := []requirements.Option{
		requirements.WithLogger(logging.RequirementsLogger(provider)),
	}
	if options.parser != nil {
		serviceOpts = append(serviceOpts, requirements.WithParser(options.parser))
	}

	service := requirements.NewService(requirements.Config{
		TemplatePath:    cfg.Resolve(cfg.TemplatePath),
		RequirementsDir: cfg.Resolve(cfg.RequirementsDir),
		IndexPath:       cfg.Resolve(cfg.IndexPath),
		FilePrefix:      cfg.FilePrefix,
		FileSuffix:      cfg.FileSuffix,
		Naming:          strings.ToLower(strings.TrimSpace(cfg.Naming)),
		SortIndex:       cfg.SortIndex,
		Exclude:         cfg.Exclude,
		Parser:          cfg.Preview.Parser,
	}, serviceOpts...)

	logging.BootstrapLogger(provider).Debug("reqdocs.module.ready",
		"root", cfg.Root,
		"requirements_dir", cfg.RequirementsDir,
		"index", cfg.IndexPath,
		"naming", cfg.Naming,
	)

	return &Module{
		cfg:      cfg,
		provider: provider,
		service:  service,
	}, nil
}

// Requirements returns the requirement workflow service.
func (m *Module) Requirements() RequirementService {
	if m == nil {
		return nil
	}
	return m.service
}

// LoggerProvider exposes the provider used by module services.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	if m == nil {
		return Config{}
	}
	return m.cfg
}

// NewLoggerProvider builds the provider named by cfg.Provider. Console output
// goes to w, or stderr when w is nil.
func NewLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Level)
		}
		return console.NewProvider(console.Options{
			Writer:   w,
			MinLevel: &level,
		}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}
