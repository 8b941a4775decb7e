package requirements

import (
	"os"
	"strings"
)

// Template placeholders, substituted in this order.
const (
	PlaceholderID      = "${requirement.id.generate}"
	PlaceholderTitle   = "${requirement.title}"
	PlaceholderContext = "${requirement.context}"
)

// TemplateValues are the values injected into the requirement template.
type TemplateValues struct {
	ID      string
	Title   string
	Context string
}

// RenderTemplate replaces every placeholder occurrence. Substitution is
// sequential, so a title containing the context placeholder is itself
// replaced by the context value.
func RenderTemplate(template string, values TemplateValues) string {
	out := strings.ReplaceAll(template, PlaceholderID, values.ID)
	out = strings.ReplaceAll(out, PlaceholderTitle, values.Title)
	out = strings.ReplaceAll(out, PlaceholderContext, values.Context)
	return out
}

// writeExclusive creates path and fails when it already exists.
func writeExclusive(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
