package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/chunkmap/pkg/locator"
)

// locatorMetrics is the Prometheus implementation of locator.Metrics.
type locatorMetrics struct {
	fetchesInFlight prometheus.Gauge
	fetches         *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	chunksParsed    prometheus.Counter
}

// NewLocatorMetrics creates a Prometheus-backed locator.Metrics.
//
// Returns nil when metrics are disabled (InitRegistry not called), which
// turns instrumentation off in the locator.
func NewLocatorMetrics() locator.Metrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	return &locatorMetrics{
		fetchesInFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "chunkmap_fetches_in_flight",
			Help: "Number of chunk-map fetches currently in flight",
		}),
		fetches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "chunkmap_fetches_total",
			Help: "Total number of chunk-map fetches by outcome",
		}, []string{"outcome"}),
		fetchDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chunkmap_fetch_duration_seconds",
			Help:    "Duration of chunk-map fetches in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		chunksParsed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "chunkmap_chunks_parsed_total",
			Help: "Total number of chunk records parsed from fetched maps",
		}),
	}
}

// FetchStarted implements locator.Metrics.
func (m *locatorMetrics) FetchStarted() {
	m.fetchesInFlight.Inc()
}

// FetchSucceeded implements locator.Metrics.
func (m *locatorMetrics) FetchSucceeded(duration time.Duration, chunks int) {
	m.fetchesInFlight.Dec()
	m.fetches.WithLabelValues("success").Inc()
	m.fetchDuration.WithLabelValues("success").Observe(duration.Seconds())
	m.chunksParsed.Add(float64(chunks))
}

// FetchFailed implements locator.Metrics.
func (m *locatorMetrics) FetchFailed(duration time.Duration, code locator.ErrorCode) {
	m.fetchesInFlight.Dec()
	outcome := outcomeLabel(code)
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func outcomeLabel(code locator.ErrorCode) string {
	switch code {
	case locator.ErrTransport:
		return "transport_error"
	case locator.ErrProtocol:
		return "protocol_error"
	default:
		return "error_" + strconv.Itoa(int(code))
	}
}
