package requirements

import (
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeTitleRequired   = "REQUIREMENT_TITLE_REQUIRED"
	textCodeNameInvalid     = "REQUIREMENT_NAME_INVALID"
	textCodeTemplateMissing = "REQUIREMENT_TEMPLATE_MISSING"
	textCodeIOFailed        = "REQUIREMENT_IO_FAILED"
)

// ErrTitleRequired is returned when a requirement is created without a title.
var ErrTitleRequired = errors.New("requirement title is required")

func titleRequiredError() error {
	return goerrors.Wrap(ErrTitleRequired, goerrors.CategoryValidation, "create requirement").
		WithTextCode(textCodeTitleRequired)
}

func nameInvalidError(err error, title string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "requirement file name").
		WithTextCode(textCodeNameInvalid).
		WithMetadata(map[string]any{"title": title})
}

func templateError(err error, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "requirement template not found").
			WithTextCode(textCodeTemplateMissing).
			WithMetadata(map[string]any{"path": path})
	}
	return ioError(err, "read requirement template", path)
}

func ioError(err error, message, path string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(textCodeIOFailed).
		WithMetadata(map[string]any{"path": path})
}
