package reqdocs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-reqdocs"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := reqdocs.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Naming != reqdocs.NamingLower {
		t.Fatalf("expected lower naming by default, got %q", cfg.Naming)
	}
	if !cfg.SortIndex {
		t.Fatal("expected index sorting enabled by default")
	}
}

func TestConfigValidateNamingUnknown(t *testing.T) {
	cfg := reqdocs.DefaultConfig()
	cfg.Naming = "kebab"

	if err := cfg.Validate(); !errors.Is(err, reqdocs.ErrNamingUnknown) {
		t.Fatalf("expected ErrNamingUnknown, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := reqdocs.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, reqdocs.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), reqdocs.DefaultConfigFile)
	if err := os.WriteFile(path, []byte("index: README.md\nfile_prefix: REQ-\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := reqdocs.LoadConfig(reqdocs.DefaultConfig(), path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.IndexPath != "README.md" || cfg.FilePrefix != "REQ-" {
		t.Fatalf("unexpected overlay result %#v", cfg)
	}
}
