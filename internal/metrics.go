package internal

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records session store activity on its own registry so a
// short-lived CLI run can dump it to a node-exporter textfile.
type StoreMetrics struct {
	registry *prometheus.Registry

	operations    *prometheus.CounterVec
	persistErrors *prometheus.CounterVec
	corruptLoads  prometheus.Counter
	sessions      prometheus.Gauge
	stateBytes    prometheus.Gauge
	scrapeStages  *prometheus.CounterVec
}

// NewStoreMetrics creates and registers the collectors
func NewStoreMetrics() *StoreMetrics {
	m := &StoreMetrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webscraper_chat",
			Name:      "store_operations_total",
			Help:      "Session store operations by operation and result.",
		}, []string{"op", "result"}),
		persistErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webscraper_chat",
			Name:      "store_persist_errors_total",
			Help:      "Failed full-state writes by backend.",
		}, []string{"backend"}),
		corruptLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "webscraper_chat",
			Name:      "store_corrupt_loads_total",
			Help:      "Persisted documents discarded as malformed.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "webscraper_chat",
			Name:      "sessions",
			Help:      "Sessions in the current state document.",
		}),
		stateBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "webscraper_chat",
			Name:      "state_bytes",
			Help:      "Size of the last persisted state document.",
		}),
		scrapeStages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webscraper_chat",
			Name:      "scrape_stages_total",
			Help:      "Simulated scrape stage transitions by resulting status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(m.operations, m.persistErrors, m.corruptLoads, m.sessions, m.stateBytes, m.scrapeStages)
	return m
}

// Registry exposes the underlying registry (tests, custom gatherers)
func (m *StoreMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOp counts a store operation
func (m *StoreMetrics) ObserveOp(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObservePersistError counts a failed write
func (m *StoreMetrics) ObservePersistError(backend string) {
	if m == nil {
		return
	}
	m.persistErrors.WithLabelValues(backend).Inc()
}

// ObserveCorruptLoad counts a discarded document
func (m *StoreMetrics) ObserveCorruptLoad() {
	if m == nil {
		return
	}
	m.corruptLoads.Inc()
}

// ObserveState records the size of a persisted state
func (m *StoreMetrics) ObserveState(sessions, bytes int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(sessions))
	m.stateBytes.Set(float64(bytes))
}

// ObserveScrapeStage counts a source status transition
func (m *StoreMetrics) ObserveScrapeStage(status SourceStatus) {
	if m == nil {
		return
	}
	m.scrapeStages.WithLabelValues(string(status)).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format to path
func (m *StoreMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
