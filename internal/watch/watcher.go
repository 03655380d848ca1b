// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs kender's checks when project files change.
//
// A Watcher monitors the project tree with fsnotify, filters events through
// doublestar globs, and coalesces bursts of events into one callback after a
// quiet period. Changes that arrive while a callback is running are queued
// and delivered once it returns.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

// builtinIgnores are never watched. Bundler and tool caches churn during a
// test run and would retrigger it.
var builtinIgnores = []string{
	".git/**",
	".bundle/**",
	"vendor/bundle/**",
	"node_modules/**",
	"tmp/**",
	"log/**",
	"coverage/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

type (
	// ChangeFunc receives the deduplicated, sorted project-relative paths
	// that changed during one debounce window.
	ChangeFunc func(ctx context.Context, changed []string) error

	// Config holds the parameters for a Watcher.
	Config struct {
		// Dir is the project root. Empty means the working directory.
		Dir string
		// Patterns select the files that trigger a run. Empty matches all.
		Patterns []string
		// Ignore adds to the built-in ignore list.
		Ignore []string
		// Debounce is the quiet period before OnChange fires.
		Debounce time.Duration
		// OnChange is invoked once per debounce window.
		OnChange ChangeFunc
		// Logger defaults to log.Default().
		Logger *log.Logger
	}

	// Watcher monitors a project tree.
	Watcher struct {
		cfg      Config
		dir      string
		ignores  []string
		debounce time.Duration
		logger   *log.Logger
		fsw      *fsnotify.Watcher
		started  atomic.Bool

		mu      sync.Mutex
		pending map[string]struct{}
		timer   *time.Timer
		busy    bool
	}
)

// New validates cfg and registers every non-ignored directory under Dir.
func New(cfg Config) (*Watcher, error) {
	dir := cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve project directory: %w", err)
	}

	if err := ValidatePatterns(cfg.Patterns); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(cfg.Ignore); err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		dir:      abs,
		ignores:  slices.Concat(builtinIgnores, cfg.Ignore),
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		pending:  make(map[string]struct{}),
	}
	if err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// ValidatePatterns reports the first malformed doublestar pattern.
func ValidatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Dir returns the absolute directory being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run processes events until ctx is done. It returns nil on cancellation
// and an error if the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.stop()

	w.logger.Info("watching for changes", "dir", w.dir, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			w.handle(ctx, evt)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: %w", err)
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, evt fsnotify.Event) {
	if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
		return
	}

	rel, err := filepath.Rel(w.dir, evt.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if w.Ignored(rel) {
		return
	}

	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if err := w.addTree(evt.Name); err != nil {
				w.logger.Warn("could not watch new directory", "dir", rel, "err", err)
			}
			return
		}
	}

	if !w.Matches(rel) {
		return
	}
	w.logger.Debug("change", "path", rel, "op", evt.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[rel] = struct{}{}
	if w.busy {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, func() { w.fire(ctx) })
	} else {
		w.timer.Reset(w.debounce)
	}
}

// fire delivers pending changes. Changes recorded while OnChange runs are
// delivered in another round once it returns. Only one fire owns the loop;
// a timer that fires while another round is running returns at once.
func (w *Watcher) fire(ctx context.Context) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return
	}
	w.busy = true
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if ctx.Err() != nil || len(w.pending) == 0 {
			w.busy = false
			w.mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(w.pending))
		clear(w.pending)
		w.mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("re-run failed", "err", err)
			}
		}
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("closing watcher", "err", err)
	}
}

// addTree watches root and every non-ignored directory below it.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("skipping inaccessible path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.dir, path)
		if err != nil {
			return nil
		}
		if slashed := filepath.ToSlash(rel); rel != "." && (w.Ignored(slashed) || w.Ignored(slashed+"/")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", root, err)
	}
	return nil
}

// Ignored reports whether the slash-separated relative path is excluded.
func (w *Watcher) Ignored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// Matches reports whether the relative path selects a re-run.
func (w *Watcher) Matches(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	return matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if doublestar.MatchUnvalidated(pat, rel) {
			return true
		}
	}
	return false
}

// isFatal reports resource exhaustion, after which no further events arrive.
func isFatal(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
