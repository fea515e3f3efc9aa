// Package ui provides the web UI for the project board.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/projectboard/internal/project"
	projectsFeature "github.com/leapstack-labs/projectboard/internal/ui/features/projects"
	"github.com/leapstack-labs/projectboard/internal/ui/metrics"
	"github.com/leapstack-labs/projectboard/internal/ui/notifier"
	"github.com/leapstack-labs/projectboard/internal/ui/router"
)

// Server is the board's HTTP server.
type Server struct {
	store        *project.Store
	board        *projectsFeature.Board
	sessionStore *sessions.CookieStore
	notifier     *notifier.Notifier
	metrics      *metrics.Metrics
	reload       *router.Reloader
	port         int
	dev          bool
	watch        bool
	watchDir     string
	logger       *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	Store         *project.Store
	Port          int
	Dev           bool
	Watch         bool
	WatchDir      string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer wires the board onto store. The list views subscribe before the
// notifier so that every update stream renders views holding the new state.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(3600)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := metrics.New()
	store := cfg.Store
	if store == nil {
		store = project.NewStore()
	}
	board := projectsFeature.NewBoard(store)
	notify := notifier.New(notifier.WithSubscriberHook(m.SetSSEClients))
	store.AddListener(notify.Listener())
	m.Observe(store)

	return &Server{
		store:        store,
		board:        board,
		sessionStore: sessionStore,
		notifier:     notify,
		metrics:      m,
		reload:       router.NewReloader(),
		port:         cfg.Port,
		dev:          cfg.Dev,
		watch:        cfg.Watch,
		watchDir:     cfg.WatchDir,
		logger:       logger,
	}
}

// Handler builds the HTTP handler with all routes and middleware.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.board, s.sessionStore, s.notifier, s.metrics, s.reload, s.logger, s.IsDev()); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.dev && s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether dev-only routes are enabled.
func (s *Server) IsDev() bool {
	return s.dev
}

// Board returns the form and list views served by s.
func (s *Server) Board() *projectsFeature.Board {
	return s.board
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles reloads connected pages whenever a static asset changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.watchDir); err != nil {
		// Not fatal: the board works without hot reload.
		s.logger.Error("failed to watch static directory", "dir", s.watchDir, "error", err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isAsset(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static asset changed, reloading pages", "file", name)
				s.reload.Trigger()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isAsset(name string) bool {
	switch filepath.Ext(name) {
	case ".css", ".js", ".svg", ".png", ".ico":
		return true
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
