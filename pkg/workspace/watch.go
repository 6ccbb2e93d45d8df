package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sysml-tools/sysmlcore/pkg/host"
)

// WatchOptions configures a Watcher (§4.10's live-editing surface:
// set_file_content is driven by the caller's event loop, and a
// filesystem watch is the natural event source for files edited outside
// the editor itself).
type WatchOptions struct {
	DebounceMs     int
	IgnorePatterns []string
}

// DefaultWatchOptions applies a 200ms debounce and ignores editor temp and
// swap files (`*.tmp`, `*.swp`). Build/VCS directories are skipped by every
// Watcher regardless of options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200, IgnorePatterns: []string{"*.tmp", "*.swp"}}
}

// Watcher watches a workspace directory and drives host.SetFileContent /
// host.RemoveFile as files change, debouncing rapid successive writes to
// the same path into a single reindex. Grounded on pkg/indexer's
// FileWatcher debounce-timer-map design.
type Watcher struct {
	fsw     *fsnotify.Watcher
	host    *host.Host
	logger  *slog.Logger
	options WatchOptions

	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer

	mu      sync.Mutex
	stopCh  chan struct{}
	stopped bool
}

// NewWatcher builds a Watcher over h. Start must be called to begin
// watching a directory.
func NewWatcher(h *host.Host, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fsw:            fsw,
		host:           h,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopCh:         make(chan struct{}),
	}, nil
}

// Start adds rootPath and every non-ignored subdirectory to the watch
// set and begins the background event loop.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	if err := w.fsw.Add(rootPath); err != nil {
		return fmt.Errorf("watch %q: %w", rootPath, err)
	}
	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set up watches under %q: %w", rootPath, err)
	}

	w.logger.Info("workspace watcher started", "root", rootPath)
	go w.eventLoop()
	return nil
}

// Stop halts the watcher and cancels any pending debounce timers.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)

	w.debounceMu.Lock()
	for _, t := range w.debounceTimers {
		t.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("workspace watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) || !isSourceFile(path) {
		return
	}
	w.logger.Debug("workspace file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write, event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceReindex(path)
	case event.Op&fsnotify.Remove == fsnotify.Remove, event.Op&fsnotify.Rename == fsnotify.Rename:
		w.host.RemoveFile(path)
	}
}

func (w *Watcher) debounceReindex(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if t, exists := w.debounceTimers[path]; exists {
		t.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(time.Duration(w.options.DebounceMs)*time.Millisecond, func() {
		w.reindex(path)
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) reindex(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to read changed file", "file", path, "error", err)
		return
	}
	diags := w.host.SetFileContent(path, string(data))
	w.logger.Debug("reindexed changed file", "file", path, "diagnostics", len(diags))
}

func (w *Watcher) shouldIgnore(path string) bool {
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build":
		return true
	}
	return false
}

func isSourceFile(path string) bool {
	return strings.HasSuffix(path, ".sysml") || strings.HasSuffix(path, ".kerml")
}
