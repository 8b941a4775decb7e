package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-reqdocs"
	requirementscmd "github.com/goliatone/go-reqdocs/internal/commands/requirements"
	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// Options captures configuration for the reqdocs CLI bootstrap.
type Options struct {
	// Root is the project directory. Empty keeps the configured root.
	Root string
	// ConfigPath names an explicit config file. Empty looks for .reqdocs.yaml under Root.
	ConfigPath  string
	LogProvider string
	LogLevel    string
	LogFormat   string
	// LogWriter receives console log output. Defaults to stderr.
	LogWriter io.Writer
	// Output receives command output.
	Output         io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the reqdocs module together with its command handlers.
type Module struct {
	Module   *reqdocs.Module
	Service  interfaces.RequirementService
	Handlers *requirementscmd.HandlerSet
	Logger   interfaces.Logger
}

// Close releases dispatcher subscriptions held by the module handlers.
func (m *Module) Close() {
	if m == nil {
		return
	}
	m.Handlers.Unsubscribe()
}

// BuildModule loads configuration, applies CLI overrides and wires the
// requirement service and command handlers.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	moduleOpts := []reqdocs.Option{reqdocs.WithLogWriter(opts.LogWriter)}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, reqdocs.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := reqdocs.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise reqdocs module: %w", err)
	}

	service := module.Requirements()
	handlers, err := requirementscmd.RegisterRequirementCommands(nil, service, module.LoggerProvider(),
		requirementscmd.WithOutput(opts.Output),
		requirementscmd.WithDispatcher(requirementscmd.Dispatcher{}),
		requirementscmd.WithLayout(cfg.RequirementsDir, cfg.IndexPath),
	)
	if err != nil {
		return nil, fmt.Errorf("register requirement commands: %w", err)
	}

	return &Module{
		Module:   module,
		Service:  service,
		Handlers: handlers,
		Logger:   logging.BootstrapLogger(module.LoggerProvider()),
	}, nil
}

// LoadConfig resolves the effective configuration: defaults, then the config
// file, then CLI overrides.
func LoadConfig(opts Options) (reqdocs.Config, error) {
	cfg := reqdocs.DefaultConfig()

	root := strings.TrimSpace(opts.Root)
	path := strings.TrimSpace(opts.ConfigPath)
	optional := path == ""
	if optional {
		base := root
		if base == "" {
			base = "."
		}
		path = filepath.Join(base, reqdocs.DefaultConfigFile)
	}

	cfg, err := reqdocs.LoadConfig(cfg, path, optional)
	if err != nil {
		return cfg, err
	}

	if root != "" {
		cfg.Root = root
	}
	if value := strings.TrimSpace(opts.LogProvider); value != "" {
		cfg.Logging.Provider = value
	}
	if value := strings.TrimSpace(opts.LogLevel); value != "" {
		cfg.Logging.Level = value
	}
	if value := strings.TrimSpace(opts.LogFormat); value != "" {
		cfg.Logging.Format = value
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
