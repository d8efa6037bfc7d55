// Package preview serves the rendered site locally and rebuilds on content
// changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/site"
)

// debounceWindow batches rapid editor save events into one rebuild.
const debounceWindow = 300 * time.Millisecond

// Server watches the content directory and serves the output directory.
type Server struct {
	cfg      *config.Config
	builder  *site.Builder
	port     int
	registry *prom.Registry
	// RebuildEvery optionally schedules full rebuilds on an interval,
	// catching changes the watcher missed. Zero disables it.
	RebuildEvery time.Duration
}

// NewServer creates a preview server.
func NewServer(cfg *config.Config, builder *site.Builder, port int, registry *prom.Registry) *Server {
	return &Server{cfg: cfg, builder: builder, port: port, registry: registry}
}

// Run builds once, then serves and rebuilds until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx, "initial")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addDirsRecursive(watcher, s.cfg.Content.Dir); err != nil {
		return err
	}

	var scheduler gocron.Scheduler
	if s.RebuildEvery > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(s.RebuildEvery),
			gocron.NewTask(func() { s.rebuild(ctx, "scheduled") }),
			gocron.WithName("periodic-rebuild"),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule periodic rebuild: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	httpServer := s.newHTTPServer()
	httpErr := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "addr", httpServer.Addr, "url", fmt.Sprintf("http://localhost:%d", s.port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
	}()

	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)

		case err := <-httpErr:
			return fmt.Errorf("preview http server: %w", err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(event.Name) {
				continue
			}
			// New directories need to be watched too.
			if event.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					_ = addDirsRecursive(watcher, event.Name)
				}
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
			} else {
				debounce.Reset(debounceWindow)
			}
			debounceC = debounce.C

		case <-debounceC:
			debounceC = nil
			s.rebuild(ctx, "change")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) rebuild(ctx context.Context, reason string) {
	report, err := s.builder.Build(ctx, false)
	if err != nil {
		slog.Error("Rebuild failed", "reason", reason, logfields.Error(err))
		return
	}
	slog.Info("Rebuild completed",
		"reason", reason,
		logfields.Pages(report.Pages),
		logfields.Skipped(report.Skipped))
}

func (s *Server) newHTTPServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output.Directory)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// addDirsRecursive watches dir and every non-hidden subdirectory beneath it.
func addDirsRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// shouldIgnoreEvent filters editor temp files and hidden files.
func shouldIgnoreEvent(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "#") {
		return true
	}
	if strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, "~") {
		return true
	}
	return false
}
