package requirements

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/internal/markdown"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// Config controls where requirement files live and how they are named.
// Paths are used as given; callers resolve them against the project root.
type Config struct {
	TemplatePath    string
	RequirementsDir string
	IndexPath       string
	FilePrefix      string
	FileSuffix      string
	Naming          string
	SortIndex       bool
	// Exclude lists glob patterns, relative to RequirementsDir, that the scan skips.
	Exclude []string
	Parser  interfaces.ParseOptions
}

// Option customises a Service.
type Option func(*Service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser overrides the Markdown parser used for previews.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// Service implements interfaces.RequirementService on top of the local filesystem.
type Service struct {
	cfg    Config
	namer  Namer
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

var _ interfaces.RequirementService = (*Service)(nil)

// NewService constructs a requirement service. A Goldmark parser using
// cfg.Parser is created when none is supplied.
func NewService(cfg Config, opts ...Option) *Service {
	svc := &Service{
		cfg: cfg,
		namer: Namer{
			Prefix:   cfg.FilePrefix,
			Suffix:   cfg.FileSuffix,
			Strategy: cfg.Naming,
		},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.parser == nil {
		svc.parser = markdown.NewGoldmarkParser(cfg.Parser)
	}
	return svc
}

// Create renders the template into a new requirement file and rewrites the
// index. An existing file with the same name is left untouched and reported
// with Created set to false.
func (s *Service) Create(ctx context.Context, opts interfaces.CreateOptions) (*interfaces.CreateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Title) == "" {
		return nil, titleRequiredError()
	}

	name, err := s.namer.FileName(opts.Title)
	if err != nil {
		return nil, nameInvalidError(err, opts.Title)
	}
	base := s.logger.WithContext(ctx)
	if !s.namer.IsPortable(opts.Title) {
		base.Info("requirement.filename.not_slug", "title", opts.Title, "file", name)
	}

	target := filepath.Join(s.cfg.RequirementsDir, name)
	logger := logging.WithRequirementContext(base, target, "", "create")

	if err := os.MkdirAll(s.cfg.RequirementsDir, 0o755); err != nil {
		return nil, ioError(err, "create requirements directory", s.cfg.RequirementsDir)
	}

	if _, err := os.Stat(target); err == nil {
		logger.Info("requirement.create.skipped", "reason", "exists")
		return &interfaces.CreateResult{Created: false, Path: target}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, ioError(err, "stat requirement file", target)
	}

	template, err := os.ReadFile(s.cfg.TemplatePath)
	if err != nil {
		return nil, templateError(err, s.cfg.TemplatePath)
	}

	records, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	id, skipped := NextID(records)
	for _, record := range skipped {
		logger.Warn("requirement.id.not_numeric", "file", record.FilePath, "id", record.ID)
	}
	logger = logging.WithFields(logger, map[string]any{"requirement_id": id})

	rendered := RenderTemplate(string(template), TemplateValues{
		ID:      id,
		Title:   opts.Title,
		Context: opts.Context,
	})
	if err := writeExclusive(target, []byte(rendered)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			logger.Info("requirement.create.skipped", "reason", "created concurrently")
			return &interfaces.CreateResult{Created: false, Path: target}, nil
		}
		return nil, ioError(err, "write requirement file", target)
	}
	logger.Info("requirement.created")

	record := interfaces.Requirement{
		ID:       id,
		Title:    opts.Title,
		Context:  opts.Context,
		FilePath: name,
	}
	records = append(records, record)

	if err := s.writeIndex(ctx, records); err != nil {
		return nil, err
	}

	return &interfaces.CreateResult{
		Created:     true,
		Path:        target,
		Requirement: record,
		IndexPath:   s.cfg.IndexPath,
	}, nil
}

// UpdateIndex rescans the requirements directory and rewrites the index.
func (s *Service) UpdateIndex(ctx context.Context) (*interfaces.IndexResult, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.writeIndex(ctx, records); err != nil {
		return nil, err
	}
	return &interfaces.IndexResult{
		Path:         s.cfg.IndexPath,
		Requirements: records,
	}, nil
}

// List returns every requirement record in index order.
func (s *Service) List(ctx context.Context) ([]interfaces.Requirement, error) {
	records, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	if s.cfg.SortIndex {
		SortRecords(records)
	}
	return records, nil
}

// RenderIndex formats records as the index document without touching disk.
func (s *Service) RenderIndex(ctx context.Context, records []interfaces.Requirement) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	linkDir, err := s.linkDir()
	if err != nil {
		return nil, err
	}
	return FormatIndex(records, s.linkFunc(linkDir)), nil
}

// PreviewIndex renders the current index to HTML.
func (s *Service) PreviewIndex(ctx context.Context, opts interfaces.ParseOptions) ([]byte, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	document, err := s.RenderIndex(ctx, records)
	if err != nil {
		return nil, err
	}
	html, err := s.parser.ParseWithOptions(document, markdown.MergeParseOptions(s.cfg.Parser, opts))
	if err != nil {
		return nil, fmt.Errorf("requirements preview: %w", err)
	}
	return html, nil
}

func (s *Service) scan(ctx context.Context) ([]interfaces.Requirement, error) {
	info, err := os.Stat(s.cfg.RequirementsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioError(err, "stat requirements directory", s.cfg.RequirementsDir)
	}
	if !info.IsDir() {
		return nil, ioError(fmt.Errorf("%s is not a directory", s.cfg.RequirementsDir), "scan requirements", s.cfg.RequirementsDir)
	}

	loader, err := markdown.NewLoader(os.DirFS(s.cfg.RequirementsDir), markdown.LoaderConfig{
		Prefix:    s.cfg.FilePrefix,
		Suffix:    s.cfg.FileSuffix,
		Recursive: true,
		Exclude:   s.cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}
	sources, err := loader.LoadDirectory(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, ioError(err, "scan requirements", s.cfg.RequirementsDir)
	}

	records := make([]interfaces.Requirement, 0, len(sources))
	for _, source := range sources {
		logger := s.logger.WithContext(ctx)
		record, err := ParseRequirement(source.Path, source.Data)
		if err != nil {
			logger.Warn("requirement.frontmatter.invalid", "file", source.Path, "error", err)
		}
		record.Checksum = source.Checksum
		if record.ID == "" {
			logger.Warn("requirement.id.missing", "file", source.Path)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Service) writeIndex(ctx context.Context, records []interfaces.Requirement) error {
	if s.cfg.SortIndex {
		SortRecords(records)
	}
	document, err := s.RenderIndex(ctx, records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.cfg.IndexPath, document, 0o644); err != nil {
		return ioError(err, "write requirements index", s.cfg.IndexPath)
	}
	s.logger.WithContext(ctx).Debug("requirements.index.written", "path", s.cfg.IndexPath, "count", len(records))
	return nil
}

// linkDir is the slash separated path from the index directory to the
// requirements directory.
func (s *Service) linkDir() (string, error) {
	indexDir, err := filepath.Abs(filepath.Dir(s.cfg.IndexPath))
	if err != nil {
		return "", ioError(err, "resolve index directory", s.cfg.IndexPath)
	}
	reqDir, err := filepath.Abs(s.cfg.RequirementsDir)
	if err != nil {
		return "", ioError(err, "resolve requirements directory", s.cfg.RequirementsDir)
	}
	rel, err := filepath.Rel(indexDir, reqDir)
	if err != nil {
		return "", ioError(err, "resolve index link", s.cfg.IndexPath)
	}
	return filepath.ToSlash(rel), nil
}

func (s *Service) linkFunc(linkDir string) LinkFunc {
	return func(record interfaces.Requirement) string {
		link, err := s.namer.Link(linkDir, record.Title)
		if err != nil {
			return joinLink(linkDir, record.FilePath)
		}
		return link
	}
}

func joinLink(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}
