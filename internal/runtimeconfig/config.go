package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// ErrTemplatePathRequired indicates the requirement template location is missing.
var ErrTemplatePathRequired = errors.New("reqdocs config: template path is required")

// ErrRequirementsDirRequired indicates the requirements directory is missing.
var ErrRequirementsDirRequired = errors.New("reqdocs config: requirements directory is required")

var ErrIndexPathRequired = errors.New("reqdocs config: index path is required")
var ErrFilePrefixRequired = errors.New("reqdocs config: requirement file prefix is required")
var ErrFileSuffixRequired = errors.New("reqdocs config: requirement file suffix is required")
var ErrNamingUnknown = errors.New("reqdocs config: naming strategy is invalid")
var ErrLoggingProviderUnknown = errors.New("reqdocs config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("reqdocs config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("reqdocs config: logging format is invalid")
var ErrExcludePatternInvalid = errors.New("reqdocs config: exclude pattern is invalid")
var ErrWatchDebounceInvalid = errors.New("reqdocs config: watch debounce must not be negative")

const (
	// NamingLower derives file names from the lowercased title.
	NamingLower = "lower"
	// NamingSlug derives file names from the slug normalised title.
	NamingSlug = "slug"
)

// DefaultConfigFile is looked up under Root when no explicit config path is given.
const DefaultConfigFile = ".reqdocs.yaml"

// Config aggregates the file layout and runtime options for requirement workflows.
// Relative paths resolve against Root.
type Config struct {
	Root            string        `yaml:"root"`
	TemplatePath    string        `yaml:"template"`
	RequirementsDir string        `yaml:"requirements_dir"`
	IndexPath       string        `yaml:"index"`
	FilePrefix      string        `yaml:"file_prefix"`
	FileSuffix      string        `yaml:"file_suffix"`
	Naming          string        `yaml:"naming"`
	SortIndex       bool          `yaml:"sort_index"`
	Exclude         []string      `yaml:"exclude"`
	Preview         PreviewConfig `yaml:"preview"`
	Watch           WatchConfig   `yaml:"watch"`
	Logging         LoggingConfig `yaml:"logging"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	// Debounce is the quiet period after the last change before the index is
	// rewritten. Accepts Go duration strings such as "250ms".
	Debounce time.Duration `yaml:"debounce"`
}

// PreviewConfig configures HTML rendering of the index.
type PreviewConfig struct {
	Parser interfaces.ParseOptions `yaml:"parser"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the layout used by the requirements script: templates
// under templates/, requirement files under docs/requirements and the index at
// docs/requirements.md.
func DefaultConfig() Config {
	return Config{
		Root:            ".",
		TemplatePath:    filepath.Join("templates", "requirement.md"),
		RequirementsDir: filepath.Join("docs", "requirements"),
		IndexPath:       filepath.Join("docs", "requirements.md"),
		FilePrefix:      "req-",
		FileSuffix:      ".md",
		Naming:          NamingLower,
		SortIndex:       true,
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Preview: PreviewConfig{
			Parser: interfaces.ParseOptions{
				Extensions: []string{"table", "strikethrough", "linkify"},
			},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "warn",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.TemplatePath) == "" {
		return ErrTemplatePathRequired
	}
	if strings.TrimSpace(cfg.RequirementsDir) == "" {
		return ErrRequirementsDirRequired
	}
	if strings.TrimSpace(cfg.IndexPath) == "" {
		return ErrIndexPathRequired
	}
	if cfg.FilePrefix == "" {
		return ErrFilePrefixRequired
	}
	if cfg.FileSuffix == "" {
		return ErrFileSuffixRequired
	}
	if naming := normalize(cfg.Naming); naming != NamingLower && naming != NamingSlug {
		return fmt.Errorf("%w: %s", ErrNamingUnknown, cfg.Naming)
	}
	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrExcludePatternInvalid, pattern, err)
		}
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrWatchDebounceInvalid, cfg.Watch.Debounce)
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// Resolve joins a configured path with Root unless it is already absolute.
func (cfg Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		root = "."
	}
	return filepath.Join(root, path)
}

// LoadFile overlays the YAML document at path on top of cfg. When optional is
// true a missing file leaves cfg untouched.
func LoadFile(cfg Config, path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reqdocs config: read %s: %w", path, err)
	}

	out := cfg
	if err := yaml.Unmarshal(data, &out); err != nil {
		return cfg, fmt.Errorf("reqdocs config: parse %s: %w", path, err)
	}
	return out, nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
