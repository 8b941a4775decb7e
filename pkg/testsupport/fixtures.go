package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultTemplate mirrors the placeholder layout of templates/requirement.md
// without the trailing sections.
const DefaultTemplate = "# ${requirement.title}\n" +
	"- **Id**: ${requirement.id.generate}\n" +
	"- **Context**: ${requirement.context}\n"

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden reads a golden file and fails the test when it is missing.
func LoadGolden(t testing.TB, path string) string {
	t.Helper()
	data, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load golden %s: %v", path, err)
	}
	return string(data)
}

// NewProject creates a temporary project root holding templates/requirement.md.
// An empty template writes DefaultTemplate.
func NewProject(t testing.TB, template string) string {
	t.Helper()
	if template == "" {
		template = DefaultTemplate
	}
	root := t.TempDir()
	WriteFile(t, filepath.Join(root, "templates", "requirement.md"), template)
	return root
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
