// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	projectsFeature "github.com/leapstack-labs/projectboard/internal/ui/features/projects"
	"github.com/leapstack-labs/projectboard/internal/ui/metrics"
	"github.com/leapstack-labs/projectboard/internal/ui/notifier"
	"github.com/leapstack-labs/projectboard/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server. reload is only used
// in dev mode and may be nil otherwise.
func SetupRoutes(
	router chi.Router,
	board *projectsFeature.Board,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	m *metrics.Metrics,
	reload *Reloader,
	logger *slog.Logger,
	isDev bool,
) error {
	if isDev && reload != nil {
		setupReload(router, reload)
	}

	router.Handle("/static/*", resources.Handler())
	router.Handle("/metrics", m.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	return projectsFeature.SetupRoutes(router, board, sessionStore, notify, m, logger, isDev)
}

// Reloader tells connected dev pages to reload themselves.
type Reloader struct {
	ch   chan struct{}
	once sync.Once
}

// NewReloader creates a Reloader.
func NewReloader() *Reloader {
	return &Reloader{ch: make(chan struct{}, 1)}
}

// Trigger requests a reload. Requests coalesce until a page picks one up.
func (rl *Reloader) Trigger() {
	select {
	case rl.ch <- struct{}{}:
	default:
	}
}

// C delivers pending reload requests.
func (rl *Reloader) C() <-chan struct{} {
	return rl.ch
}

func setupReload(router chi.Router, rl *Reloader) {
	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		// The first page to connect after a restart picks up the new build.
		rl.once.Do(reload)
		select {
		case <-rl.C():
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		rl.Trigger()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
