// Package metrics provides Prometheus instrumentation for API calls.
//
// A [Recorder] plugs into a client as a call observer:
//
//	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
//	client, err := polly.New(polly.WithObserver(rec.Observe))
//
// Every call then increments polly_client_requests_total and feeds
// polly_client_request_duration_seconds, labelled by operation.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kouma-root/polly-go"
)

const (
	namespace = "polly"
	subsystem = "client"
)

// Recorder records API call metrics on a Prometheus registry.
type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its metrics registered on reg.
//
// Pass [prometheus.DefaultRegisterer] to publish on the default registry.
// Registering two Recorders on the same registry panics, as the metric
// names collide.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	auto := promauto.With(reg)

	return &Recorder{
		requests: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of API requests by operation and status code",
			},
			[]string{"operation", "code"},
		),
		duration: auto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds by operation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// Observe records one completed API call. Pass it to [polly.WithObserver].
//
// The code label carries the HTTP status code, or "error" when the request
// failed before a response was received.
func (r *Recorder) Observe(info polly.CallInfo) {
	code := "error"
	if info.StatusCode != 0 {
		code = strconv.Itoa(info.StatusCode)
	}

	r.requests.WithLabelValues(info.Operation, code).Inc()
	r.duration.WithLabelValues(info.Operation).Observe(info.Latency.Seconds())
}
