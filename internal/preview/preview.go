// Package preview serves the generated site locally and rebuilds it whenever
// the content tree changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/logfields"
)

const debounceDelay = 300 * time.Millisecond

// Options configure the preview server.
type Options struct {
	Port    int
	Build   func(context.Context) error // invoked for the initial build and after changes
	Metrics http.Handler                // optional /metrics handler
}

// Run serves the directory holding the index file and watches the content
// root, rebuilding on change. It blocks until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	if opts.Build == nil {
		return errors.New("preview requires a build function")
	}

	absContent, err := resolveContentDir(cfg)
	if err != nil {
		return err
	}

	status := &buildStatus{}
	runBuild(ctx, opts.Build, status)

	server := startHTTPServer(cfg, opts, status)
	defer shutdownHTTPServer(server)

	watcher, err := setupFileWatcher(absContent)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := setupRebuildDebouncer()
	startRebuildWorker(ctx, opts.Build, status, rebuildReq)

	slog.Info("Preview server listening",
		slog.Int("port", opts.Port),
		slog.String("url", fmt.Sprintf("http://localhost:%d", opts.Port)))

	return runLoop(ctx, watcher, trigger)
}

// resolveContentDir validates and resolves the absolute path of the content root.
func resolveContentDir(cfg *config.Config) (string, error) {
	abs, err := filepath.Abs(cfg.Content.Root)
	if err != nil {
		return "", fmt.Errorf("resolve content root: %w", err)
	}
	if st, statErr := os.Stat(abs); statErr != nil || !st.IsDir() {
		return "", fmt.Errorf("content root not found or not a directory: %s", abs)
	}
	return abs, nil
}

func runBuild(ctx context.Context, build func(context.Context) error, status *buildStatus) {
	if err := build(ctx); err != nil {
		slog.Error("build failed", logfields.Error(err))
		status.setError(err)
		return
	}
	status.setSuccess()
}

func startHTTPServer(cfg *config.Config, opts Options, status *buildStatus) *http.Server {
	mux := http.NewServeMux()

	siteDir := filepath.Dir(filepath.Clean(cfg.Output.Index))
	mux.Handle("/", http.FileServer(http.Dir(siteDir)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		hasError, err, hasGoodBuild := status.status()
		if hasError && !hasGoodBuild {
			http.Error(w, fmt.Sprintf("build failing: %v", err), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ok")
	})

	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview server error", logfields.Error(err))
		}
	}()
	return server
}

func shutdownHTTPServer(server *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
}

// setupFileWatcher creates the filesystem watcher covering the content tree.
func setupFileWatcher(absContent string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(watcher, absContent); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// setupRebuildDebouncer creates the rebuild channel and a trigger function
// that coalesces bursts of filesystem events.
func setupRebuildDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// startRebuildWorker processes rebuild requests one at a time; a request
// arriving mid-build queues exactly one follow-up build.
func startRebuildWorker(ctx context.Context, build func(context.Context) error, status *buildStatus, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("Change detected; rebuilding site")
				runBuild(ctx, build, status)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

// runLoop handles filesystem events until the context is cancelled.
func runLoop(ctx context.Context, watcher *fsnotify.Watcher, trigger func()) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down preview server...")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// handleFileEvent processes a filesystem event and triggers a rebuild if needed.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Dir(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger rebuilds: hidden files, editor temp/swap files, generated pages.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Rendered output lands next to the sources; rebuilding on our own
	// writes would loop forever.
	if strings.HasSuffix(base, ".html") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	if base == "Thumbs.db" {
		return true
	}

	return false
}
