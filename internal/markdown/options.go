package markdown

import "github.com/goliatone/go-reqdocs/pkg/interfaces"

// MergeParseOptions layers override on top of base. Extensions replace the
// base list when set; boolean flags can only be switched on.
func MergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}
