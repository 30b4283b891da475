// Package watcher reports filesystem changes under a project directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeNotifier = (*Watcher)(nil)

// DefaultIgnores are directory names never watched: VCS metadata and
// build or dependency output that tools rewrite on every run.
var DefaultIgnores = []string{
	".git", "target", "node_modules", "dist", "__pycache__", ".venv",
}

// Watcher recursively watches a directory tree with fsnotify.
// New directories are added as they appear.
type Watcher struct {
	root    string
	ignores []string
	files   []string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithIgnoredFiles skips changes to the given files and to the temporary
// files an atomic writer creates next to them (".tmp-<name>*").
func WithIgnoredFiles(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			if p != "" {
				w.files = append(w.files, filepath.Clean(p))
			}
		}
	}
}

// New creates a watcher for root. A nil ignores uses DefaultIgnores.
func New(root string, ignores []string, opts ...Option) *Watcher {
	if ignores == nil {
		ignores = DefaultIgnores
	}
	w := &Watcher{root: root, ignores: ignores}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Changes starts watching and returns a channel of changed paths.
// The channel closes when ctx is done or the watcher is closed.
func (w *Watcher) Changes(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil, errors.New("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.addRecursive(fsw, w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.watcher = fsw

	out := make(chan string)
	go w.loop(ctx, fsw, out)
	return out, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer func() { _ = fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.ignored(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, ev.Name); err != nil {
						logger.Debug("watch %s: %v", ev.Name, err)
					}
				}
			}
			select {
			case out <- ev.Name:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && slices.Contains(w.ignores, d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored reports whether path is an ignored file or any element of path
// below root is an ignored directory.
func (w *Watcher) ignored(path string) bool {
	if w.ignoredFile(path) {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if slices.Contains(w.ignores, part) {
			return true
		}
	}
	return false
}

func (w *Watcher) ignoredFile(path string) bool {
	path = filepath.Clean(path)
	dir, base := filepath.Split(path)
	for _, f := range w.files {
		if path == f {
			return true
		}
		fdir, fbase := filepath.Split(f)
		if dir == fdir && strings.HasPrefix(base, ".tmp-"+fbase) {
			return true
		}
	}
	return false
}
