package requirementscmd

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-reqdocs/internal/markdown"
)

const (
	createMessageType      = "reqdocs.requirements.create"
	updateIndexMessageType = "reqdocs.requirements.update_index"
	listMessageType        = "reqdocs.requirements.list"
	previewMessageType     = "reqdocs.requirements.preview"
)

// StdoutOutput routes preview HTML to the handler's output writer instead of a file.
const StdoutOutput = "-"

// CreateRequirementCommand creates a requirement document from the template
// and refreshes the index.
type CreateRequirementCommand struct {
	// Title names the requirement and derives its file name.
	Title string `json:"title"`
	// Context is a short free-form classification. It may be empty.
	Context string `json:"context,omitempty"`
}

// Type implements command.Message.
func (CreateRequirementCommand) Type() string { return createMessageType }

// Validate ensures a usable title is present before handlers execute.
func (cmd CreateRequirementCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, validation.Required, validation.By(func(value any) error {
			title, _ := value.(string)
			if strings.TrimSpace(title) == "" {
				return validation.NewError("reqdocs.requirements.create.title_required", "title is required")
			}
			if strings.ContainsAny(title, "\n\r") {
				return validation.NewError("reqdocs.requirements.create.title_single_line", "title must be a single line")
			}
			return nil
		})),
		validation.Field(&cmd.Context, validation.By(func(value any) error {
			text, _ := value.(string)
			if strings.ContainsAny(text, "\n\r") {
				return validation.NewError("reqdocs.requirements.create.context_single_line", "context must be a single line")
			}
			return nil
		})),
	)
}

// UpdateIndexCommand rescans the requirements directory and rewrites the index.
type UpdateIndexCommand struct{}

// Type implements command.Message.
func (UpdateIndexCommand) Type() string { return updateIndexMessageType }

// ListRequirementsCommand writes the current index table to the handler output
// without touching the index file.
type ListRequirementsCommand struct{}

// Type implements command.Message.
func (ListRequirementsCommand) Type() string { return listMessageType }

// PreviewIndexCommand renders the index to HTML.
type PreviewIndexCommand struct {
	// Output is the destination file. Empty or StdoutOutput writes to the handler output.
	Output string `json:"output,omitempty"`
	// Extensions overrides the configured goldmark extensions.
	Extensions []string `json:"extensions,omitempty"`
	HardWraps  bool     `json:"hard_wraps,omitempty"`
	SafeMode   bool     `json:"safe_mode,omitempty"`
}

// Type implements command.Message.
func (PreviewIndexCommand) Type() string { return previewMessageType }

// Validate rejects unknown extension names.
func (cmd PreviewIndexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Extensions, validation.Each(validation.By(func(value any) error {
			name, _ := value.(string)
			if !markdown.IsSupportedExtension(name) {
				return validation.NewError("reqdocs.requirements.preview.extension_unknown", fmt.Sprintf("unknown extension %q", name))
			}
			return nil
		}))),
	)
}

func (cmd PreviewIndexCommand) toStdout() bool {
	output := strings.TrimSpace(cmd.Output)
	return output == "" || output == StdoutOutput
}
