package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached by Handler.Execute. Errors already carrying a go-errors
// category, such as those returned by the requirement service, keep theirs.
const (
	CodeValidationFailed = "COMMAND_VALIDATION_FAILED"
	CodeContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	CodeContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	CodeContextError     = "COMMAND_CONTEXT_ERROR"
	CodeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error, messageType string) error {
	return wrapCommandError(err, messageType, goerrors.CategoryValidation, CodeValidationFailed, "invalid command")
}

func wrapContextError(err error, messageType string) error {
	switch {
	case errors.Is(err, context.Canceled):
		return wrapCommandError(err, messageType, goerrors.CategoryCommand, CodeContextCanceled, "command cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return wrapCommandError(err, messageType, goerrors.CategoryCommand, CodeContextTimeout, "command timed out")
	default:
		return wrapCommandError(err, messageType, goerrors.CategoryCommand, CodeContextError, "command context error")
	}
}

func wrapExecuteError(err error, messageType string) error {
	return wrapCommandError(err, messageType, goerrors.CategoryCommand, CodeExecutionFailed, "command failed")
}

func wrapCommandError(err error, messageType string, category goerrors.Category, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).
		WithTextCode(code).
		WithMetadata(map[string]any{"command": messageType})
}
