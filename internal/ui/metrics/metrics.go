// Package metrics exposes Prometheus metrics for the board UI.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leapstack-labs/projectboard/internal/project"
)

// Metrics holds the board's collectors. Each Metrics owns its registry so
// several servers (or tests) can coexist in one process.
//
// Metrics:
//   - projectboard_projects_added_total - projects added, including those present when observing starts
//   - projectboard_validation_failures_total - rejected form submissions
//   - projectboard_projects - records currently in the store
//   - projectboard_sse_clients - open update streams
type Metrics struct {
	registry *prometheus.Registry

	ProjectsAdded      prometheus.Counter
	ValidationFailures prometheus.Counter
	Projects           prometheus.Gauge
	SSEClients         prometheus.Gauge
}

// New creates and registers the board metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ProjectsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "projectboard_projects_added_total",
			Help: "Total number of projects added to the board",
		}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "projectboard_validation_failures_total",
			Help: "Total number of project submissions rejected by validation",
		}),
		Projects: factory.NewGauge(prometheus.GaugeOpts{
			Name: "projectboard_projects",
			Help: "Number of projects currently on the board",
		}),
		SSEClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "projectboard_sse_clients",
			Help: "Number of connected update streams",
		}),
	}
}

// Listener returns a store listener that tracks additions and board size.
func (m *Metrics) Listener() project.Listener {
	return func(projects []project.Record) {
		m.ProjectsAdded.Inc()
		m.Projects.Set(float64(len(projects)))
	}
}

// Observe subscribes m to store. Records already in the store, such as seeded
// projects, count as added.
func (m *Metrics) Observe(store *project.Store) {
	existing := store.Subscribe(m.Listener())
	m.ProjectsAdded.Add(float64(len(existing)))
	m.Projects.Set(float64(len(existing)))
}

// SetSSEClients records the number of open update streams.
func (m *Metrics) SetSSEClients(n int) {
	m.SSEClients.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
