package reqdocs

import "github.com/goliatone/go-reqdocs/internal/runtimeconfig"

var (
	ErrTemplatePathRequired    = runtimeconfig.ErrTemplatePathRequired
	ErrRequirementsDirRequired = runtimeconfig.ErrRequirementsDirRequired
	ErrIndexPathRequired       = runtimeconfig.ErrIndexPathRequired
	ErrFilePrefixRequired      = runtimeconfig.ErrFilePrefixRequired
	ErrFileSuffixRequired      = runtimeconfig.ErrFileSuffixRequired
	ErrNamingUnknown           = runtimeconfig.ErrNamingUnknown
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrExcludePatternInvalid   = runtimeconfig.ErrExcludePatternInvalid
	ErrWatchDebounceInvalid    = runtimeconfig.ErrWatchDebounceInvalid
)

const (
	NamingLower       = runtimeconfig.NamingLower
	NamingSlug        = runtimeconfig.NamingSlug
	DefaultConfigFile = runtimeconfig.DefaultConfigFile
)

type (
	Config        = runtimeconfig.Config
	PreviewConfig = runtimeconfig.PreviewConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	WatchConfig   = runtimeconfig.WatchConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig overlays the YAML file at path on top of cfg. A missing file is
// ignored when optional is true.
func LoadConfig(cfg Config, path string, optional bool) (Config, error) {
	return runtimeconfig.LoadFile(cfg, path, optional)
}
