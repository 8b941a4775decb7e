package requirementscmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-reqdocs/internal/commands"
	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

const (
	createOperation  = "requirements.create"
	updateOperation  = "requirements.update_index"
	listOperation    = "requirements.list"
	previewOperation = "requirements.preview"
)

var (
	_ command.Commander[CreateRequirementCommand] = (*CreateRequirementHandler)(nil)
	_ command.Commander[UpdateIndexCommand]       = (*UpdateIndexHandler)(nil)
	_ command.Commander[ListRequirementsCommand]  = (*ListRequirementsHandler)(nil)
	_ command.Commander[PreviewIndexCommand]      = (*PreviewIndexHandler)(nil)
)

// CreateRequirementHandler creates requirement documents via the shared command handler foundation.
type CreateRequirementHandler struct {
	inner *commands.Handler[CreateRequirementCommand]
}

// NewCreateRequirementHandler creates a handler bound to the supplied requirement service.
// A one-line summary of the outcome is written to out.
func NewCreateRequirementHandler(service interfaces.RequirementService, logger interfaces.Logger, out io.Writer, opts ...commands.HandlerOption[CreateRequirementCommand]) *CreateRequirementHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)

	exec := func(ctx context.Context, msg CreateRequirementCommand) error {
		// Title and context reach the template exactly as supplied.
		result, err := service.Create(ctx, interfaces.CreateOptions{
			Title:   msg.Title,
			Context: msg.Context,
		})
		if err != nil {
			return err
		}
		if !result.Created {
			fmt.Fprintf(out, "requirement already exists: %s\n", result.Path)
			return nil
		}
		logging.WithRequirementContext(baseLogger, result.Path, result.Requirement.ID, "create").
			Info("requirements.command.create.completed")
		fmt.Fprintf(out, "created requirement %s: %s\n", result.Requirement.ID, result.Path)
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateRequirementCommand]{
		commands.WithLogger[CreateRequirementCommand](baseLogger),
		commands.WithOperation[CreateRequirementCommand](createOperation),
		commands.WithMessageFields(func(msg CreateRequirementCommand) map[string]any {
			fields := map[string]any{
				"title": msg.Title,
			}
			if msg.Context != "" {
				fields["context"] = msg.Context
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateRequirementCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateRequirementHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateRequirementCommand].
func (h *CreateRequirementHandler) Execute(ctx context.Context, msg CreateRequirementCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateIndexHandler rewrites the requirements index.
type UpdateIndexHandler struct {
	inner *commands.Handler[UpdateIndexCommand]
}

// NewUpdateIndexHandler creates a handler bound to the supplied requirement service.
func NewUpdateIndexHandler(service interfaces.RequirementService, logger interfaces.Logger, out io.Writer, opts ...commands.HandlerOption[UpdateIndexCommand]) *UpdateIndexHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)

	exec := func(ctx context.Context, _ UpdateIndexCommand) error {
		result, err := service.UpdateIndex(ctx)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"index_path":        result.Path,
			"requirement_count": len(result.Requirements),
		}).Info("requirements.command.update_index.completed")
		fmt.Fprintf(out, "updated %s (%d requirements)\n", result.Path, len(result.Requirements))
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateIndexCommand]{
		commands.WithLogger[UpdateIndexCommand](baseLogger),
		commands.WithOperation[UpdateIndexCommand](updateOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdateIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateIndexCommand].
func (h *UpdateIndexHandler) Execute(ctx context.Context, msg UpdateIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListRequirementsHandler prints the index table for the current requirement files.
type ListRequirementsHandler struct {
	inner *commands.Handler[ListRequirementsCommand]
}

// NewListRequirementsHandler creates a handler bound to the supplied requirement service.
func NewListRequirementsHandler(service interfaces.RequirementService, logger interfaces.Logger, out io.Writer, opts ...commands.HandlerOption[ListRequirementsCommand]) *ListRequirementsHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)

	exec := func(ctx context.Context, _ ListRequirementsCommand) error {
		records, err := service.List(ctx)
		if err != nil {
			return err
		}
		document, err := service.RenderIndex(ctx, records)
		if err != nil {
			return err
		}
		if _, err := out.Write(document); err != nil {
			return fmt.Errorf("write requirements list: %w", err)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListRequirementsCommand]{
		commands.WithLogger[ListRequirementsCommand](baseLogger),
		commands.WithOperation[ListRequirementsCommand](listOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListRequirementsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ListRequirementsCommand].
func (h *ListRequirementsHandler) Execute(ctx context.Context, msg ListRequirementsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PreviewIndexHandler renders the requirements index to HTML.
type PreviewIndexHandler struct {
	inner *commands.Handler[PreviewIndexCommand]
}

// NewPreviewIndexHandler creates a handler bound to the supplied requirement service.
// HTML goes to out unless the message names an output file.
func NewPreviewIndexHandler(service interfaces.RequirementService, logger interfaces.Logger, out io.Writer, opts ...commands.HandlerOption[PreviewIndexCommand]) *PreviewIndexHandler {
	baseLogger := commands.EnsureLogger(logger)
	out = ensureWriter(out)

	exec := func(ctx context.Context, msg PreviewIndexCommand) error {
		html, err := service.PreviewIndex(ctx, interfaces.ParseOptions{
			Extensions: msg.Extensions,
			HardWraps:  msg.HardWraps,
			SafeMode:   msg.SafeMode,
		})
		if err != nil {
			return err
		}
		if msg.toStdout() {
			if _, err := out.Write(html); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			return nil
		}
		if err := os.WriteFile(msg.Output, html, 0o644); err != nil {
			return fmt.Errorf("write preview %s: %w", msg.Output, err)
		}
		logging.WithFields(baseLogger, map[string]any{
			"output": msg.Output,
			"bytes":  len(html),
		}).Info("requirements.command.preview.completed")
		fmt.Fprintf(out, "wrote preview %s\n", msg.Output)
		return nil
	}

	handlerOpts := []commands.HandlerOption[PreviewIndexCommand]{
		commands.WithLogger[PreviewIndexCommand](baseLogger),
		commands.WithOperation[PreviewIndexCommand](previewOperation),
		commands.WithMessageFields(func(msg PreviewIndexCommand) map[string]any {
			fields := map[string]any{}
			if !msg.toStdout() {
				fields["output"] = msg.Output
			}
			if len(msg.Extensions) > 0 {
				fields["extensions"] = strings.Join(msg.Extensions, ",")
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PreviewIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PreviewIndexCommand].
func (h *PreviewIndexHandler) Execute(ctx context.Context, msg PreviewIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

func ensureWriter(out io.Writer) io.Writer {
	if out == nil {
		return io.Discard
	}
	return out
}
