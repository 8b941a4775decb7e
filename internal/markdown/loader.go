package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// LoaderConfig configures how Markdown files are discovered within a base directory.
type LoaderConfig struct {
	// Prefix selects file names starting with the value (e.g. "req-").
	Prefix string
	// Suffix selects file names ending with the value (defaults to ".md").
	Suffix string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// Exclude lists glob patterns matched against slash separated paths
	// relative to the loader root. "*" stays within one segment, "**" spans
	// directories. A matching directory is skipped entirely.
	Exclude []string
}

// Loader turns filesystem paths into raw Markdown sources.
type Loader struct {
	fs        fs.FS
	prefix    string
	suffix    string
	recursive bool
	exclude   []glob.Glob
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
// It fails when an exclude pattern does not compile.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) (*Loader, error) {
	suffix := cfg.Suffix
	if strings.TrimSpace(suffix) == "" {
		suffix = ".md"
	}

	exclude, err := CompileExcludes(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	return &Loader{
		fs:        filesystem,
		prefix:    cfg.Prefix,
		suffix:    suffix,
		recursive: cfg.Recursive,
		exclude:   exclude,
	}, nil
}

// CompileExcludes compiles exclude patterns using '/' as the segment separator.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("markdown loader: invalid exclude pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// Source is a single file read from the loader filesystem.
type Source struct {
	// Path is slash separated and relative to the loader root.
	Path     string
	Data     []byte
	Checksum []byte
}

// LoadFile reads a single file relative to the loader root.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Source, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)
	return &Source{
		Path:     rel,
		Data:     data,
		Checksum: sum[:],
	}, nil
}

// LoadDirectory walks the loader root and returns every matching file in
// traversal order (lexical within each directory).
func (l *Loader) LoadDirectory(ctx context.Context) ([]*Source, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var results []*Source

	walkErr := fs.WalkDir(l.fs, ".", func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if current == "." {
				return nil
			}
			if !l.recursive || l.Excluded(current) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if !l.Matches(d.Name()) || l.Excluded(current) {
			return nil
		}

		source, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		results = append(results, source)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}
	return results, nil
}

// Matches reports whether a base file name satisfies the prefix/suffix convention.
func (l *Loader) Matches(name string) bool {
	return strings.HasPrefix(name, l.prefix) && strings.HasSuffix(name, l.suffix)
}

// Excluded reports whether a loader relative path matches an exclude pattern.
func (l *Loader) Excluded(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	for _, g := range l.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
