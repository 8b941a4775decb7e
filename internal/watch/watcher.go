package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/internal/markdown"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Config describes the directory to watch and which files count as requirements.
type Config struct {
	Dir      string
	Prefix   string
	Suffix   string
	Exclude  []string
	Debounce time.Duration
}

// ChangeFunc runs once per settled batch of changes.
type ChangeFunc func(ctx context.Context) error

// Stats counts watcher activity.
type Stats struct {
	Events   int
	Runs     int
	Failures int
	LastPath string
}

// Watcher rewrites the index whenever requirement files change. Bursts of
// events are collapsed into a single ChangeFunc call after Debounce elapses.
type Watcher struct {
	cfg      Config
	onChange ChangeFunc
	logger   interfaces.Logger
	loader   *markdown.Loader

	mu    sync.RWMutex
	stats Stats
}

// New validates cfg and returns a Watcher. Nothing is watched until Run.
func New(cfg Config, onChange ChangeFunc, logger interfaces.Logger) (*Watcher, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("watch: directory is required")
	}
	if onChange == nil {
		return nil, errors.New("watch: change func is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	// The loader is only used for name and exclude matching.
	loader, err := markdown.NewLoader(nil, markdown.LoaderConfig{
		Prefix:  cfg.Prefix,
		Suffix:  cfg.Suffix,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.NoOp()
	}

	return &Watcher{
		cfg:      cfg,
		onChange: onChange,
		logger:   logger,
		loader:   loader,
	}, nil
}

// Run watches the directory tree until ctx is done. The directory is created
// when missing. Failures from the change func are logged and do not stop the
// loop.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := os.MkdirAll(w.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("watch: create %s: %w", w.cfg.Dir, err)
	}
	if err := w.addTree(fsw, w.cfg.Dir); err != nil {
		return err
	}
	w.logger.Info("requirements.watch.started", "dir", w.cfg.Dir, "debounce", w.cfg.Debounce.String())

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("requirements.watch.stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(fsw, event) {
				continue
			}
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("requirements.watch.error", "error", err)

		case <-timer.C:
			w.fire(ctx)
		}
	}
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	rel, err := filepath.Rel(w.cfg.Dir, event.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if w.loader.Excluded(rel) {
		return false
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, event.Name); err != nil {
				w.logger.Warn("requirements.watch.add_failed", "dir", event.Name, "error", err)
			}
			return true
		}
	}

	// Removed directories cannot be stat'ed, so any removal or rename counts.
	if !w.loader.Matches(filepath.Base(event.Name)) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}

	w.logger.Debug("requirements.watch.event", "path", rel, "op", event.Op.String())
	w.mu.Lock()
	w.stats.Events++
	w.stats.LastPath = rel
	w.mu.Unlock()
	return true
}

func (w *Watcher) fire(ctx context.Context) {
	err := w.onChange(ctx)

	w.mu.Lock()
	w.stats.Runs++
	if err != nil {
		w.stats.Failures++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("requirements.watch.update_failed", "error", err)
	}
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if current != w.cfg.Dir {
			if rel, relErr := filepath.Rel(w.cfg.Dir, current); relErr == nil && w.loader.Excluded(filepath.ToSlash(rel)) {
				return fs.SkipDir
			}
		}
		if err := fsw.Add(current); err != nil {
			return fmt.Errorf("watch: add %s: %w", current, err)
		}
		return nil
	})
}
