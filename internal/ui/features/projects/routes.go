package projects

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/projectboard/internal/ui/metrics"
	"github.com/leapstack-labs/projectboard/internal/ui/notifier"
)

// SetupRoutes registers the board routes. Handlers are bound method values,
// so the board they serve is fixed at registration time.
func SetupRoutes(
	router chi.Router,
	board *Board,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(board, sessionStore, notify, m, logger, isDev)

	router.Get("/", handlers.BoardPage)
	router.Get("/updates", handlers.BoardUpdates)
	router.Post("/projects", handlers.SubmitProject)

	return nil
}
