package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the live popover server.
//
// Metrics collected:
//   - popover_opens_total: Counter of popover opens by interaction kind
//   - popover_closes_total: Counter of popover closes by interaction kind
//   - popover_open_duration_seconds: Histogram of how long popovers stay open
//   - popover_events_total: Counter of delivered client events by type
//   - popover_active_sessions: Gauge of live WebSocket sessions
//   - popover_websocket_errors_total: Counter of WebSocket errors by type
type Metrics struct {
	OpensTotal     *prometheus.CounterVec
	ClosesTotal    *prometheus.CounterVec
	OpenDuration   prometheus.Histogram
	EventsTotal    *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
	WSErrors       *prometheus.CounterVec
}

// NewMetrics registers the popover metrics with the given registerer.
// Pass prometheus.DefaultRegisterer for the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OpensTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popover",
			Name:      "opens_total",
			Help:      "Total number of popover opens",
		}, []string{"kind"}),

		ClosesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popover",
			Name:      "closes_total",
			Help:      "Total number of popover closes",
		}, []string{"kind"}),

		OpenDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "popover",
			Name:      "open_duration_seconds",
			Help:      "How long popovers stay open",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popover",
			Name:      "events_total",
			Help:      "Total number of client events delivered",
		}, []string{"event"}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "popover",
			Name:      "active_sessions",
			Help:      "Number of live WebSocket sessions",
		}),

		WSErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popover",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"}),
	}
}
