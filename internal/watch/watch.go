// Package watch recompiles .jsx/.js files in a directory tree as they
// change, directly adapted from gnana997/uispec's pkg/indexer.FileWatcher
// (same fsnotify.Watcher, per-path debounce-timer map guarded by a
// mutex, stopChan shape), retargeted from re-indexing symbols to
// recompiling JSX source via jsxc.Compile.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jsx-go/jsxc"
	"github.com/jsx-go/jsxc/internal/cache"
)

// DefaultDebounce is how long the watcher waits after the last event
// for a path before recompiling it, coalescing editor saves that emit
// several rapid Write events for one logical change.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce overrides DefaultDebounce when non-zero.
	Debounce time.Duration

	// Extensions lists the file suffixes watched and recompiled.
	// Defaults to []string{".jsx", ".js"}.
	Extensions []string

	// OutDir, when set, is the directory compiled files are written to;
	// otherwise each is written beside its source. The output name is the
	// source's base name with its extension replaced by ".compiled.js",
	// e.g. "component.compiled.js" for "component.jsx".
	OutDir string

	// Compile overrides jsxc.Options used for every recompile.
	Compile *jsxc.Options
}

// Watcher watches a directory tree and recompiles changed source files.
type Watcher struct {
	fsw     *fsnotify.Watcher
	cache   *cache.Cache
	logger  *slog.Logger
	options Options

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// New creates a Watcher. c may be nil, in which case every file is
// recompiled from scratch on every change.
func New(c *cache.Cache, options Options, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if options.Debounce == 0 {
		options.Debounce = DefaultDebounce
	}
	if len(options.Extensions) == 0 {
		options.Extensions = []string{".jsx", ".js"}
	}
	return &Watcher{
		fsw:            fsw,
		cache:          c,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and every subdirectory, recompiling
// matching files as they're created or modified. It runs the event
// loop in a background goroutine and returns once the initial walk
// completes.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watch: watcher already stopped")
	}
	w.mu.Unlock()

	err := filepath.Walk(rootPath, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if shouldIgnoreDir(info.Name()) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(p); err != nil {
				w.logger.Warn("watch: failed to watch directory", "path", p, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: setting up watches: %w", err)
	}

	w.logger.Info("watch: started", "root", rootPath)
	go w.eventLoop()
	return nil
}

// Stop cancels all pending debounce timers and closes the underlying
// watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, t := range w.debounceTimers {
		t.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.fsw.Close()
	w.logger.Info("watch: stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
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
			w.logger.Error("watch: fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.matches(event.Name) {
		return
	}
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write, event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceCompile(event.Name)
	}
}

func (w *Watcher) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range w.options.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (w *Watcher) debounceCompile(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if t, ok := w.debounceTimers[path]; ok {
		t.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.compileFile(path)
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) compileFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("watch: failed to read file", "file", path, "error", err)
		return
	}

	var (
		output string
		cerr   error
	)
	if w.cache != nil {
		output, cerr = w.cache.Compile(string(src), w.options.Compile)
	} else {
		output, cerr = jsxc.Compile(string(src), w.options.Compile)
	}
	if cerr != nil {
		w.logger.Error("watch: compile failed", "file", path, "error", cerr)
		return
	}

	outPath := w.outputPath(path)
	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		w.logger.Error("watch: failed to write output", "file", outPath, "error", err)
		return
	}
	w.logger.Info("watch: recompiled", "file", path, "out", outPath)
}

func (w *Watcher) outputPath(srcPath string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outName := base + ".compiled.js"
	if w.options.OutDir != "" {
		return filepath.Join(w.options.OutDir, outName)
	}
	return filepath.Join(filepath.Dir(srcPath), outName)
}

func shouldIgnoreDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "dist", "build", "vendor":
		return true
	}
	return false
}
