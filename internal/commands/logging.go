package commands

import (
	"strings"

	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

const commandModuleRoot = "reqdocs.commands"

// Layout names the files a command module works on. Set fields are attached to
// every handler log entry so a run can be traced back to its project.
type Layout struct {
	RequirementsDir string
	IndexPath       string
}

func (l Layout) fields() map[string]any {
	fields := map[string]any{}
	if dir := strings.TrimSpace(l.RequirementsDir); dir != "" {
		fields["requirements_dir"] = dir
	}
	if index := strings.TrimSpace(l.IndexPath); index != "" {
		fields["index_path"] = index
	}
	return fields
}

// CommandLogger returns the "reqdocs.commands.<module>" logger tagged with
// component=command, the module name and the layout fields.
func CommandLogger(provider interfaces.LoggerProvider, module string, layout Layout) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "requirements"
	}
	fields := layout.fields()
	fields["component"] = "command"
	fields["command_module"] = name
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), fields)
}
