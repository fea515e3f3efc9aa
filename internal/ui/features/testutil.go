// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/projectboard/internal/project"
	"github.com/leapstack-labs/projectboard/internal/testutil"
	"github.com/leapstack-labs/projectboard/internal/ui/metrics"
	"github.com/leapstack-labs/projectboard/internal/ui/notifier"
)

// TestProject is a helper to seed a store with minimal boilerplate.
type TestProject struct {
	Title       string
	Description string
	People      int
}

// TestFixture holds the dependencies UI handler tests need.
type TestFixture struct {
	Store        *project.Store
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// SetupTestFixture creates a store holding the given projects, plus a
// notifier, session store and metrics. Record ids are sequential.
func SetupTestFixture(t *testing.T, projects ...TestProject) *TestFixture {
	t.Helper()

	n := 0
	store := project.NewStore(project.WithIDFunc(func() string {
		n++
		return "test-" + strconv.Itoa(n)
	}))
	for _, p := range projects {
		people := p.People
		if people == 0 {
			people = 1
		}
		description := p.Description
		if description == "" {
			description = "test description"
		}
		store.AddProject(p.Title, description, people)
	}

	return &TestFixture{
		Store:        store,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		Metrics:      metrics.New(),
		Logger:       testutil.NewTestLogger(t),
	}
}

// RequestWithTimeout wraps a request with a context that expires after
// timeout. The cancel func is registered as test cleanup.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
