package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// request outcome labels
const (
	statusOK        = "ok"
	statusTransient = "transient"
	statusProtocol  = "protocol"
	statusRejected  = "rejected"
)

// fee cache lookup labels
const (
	feeHit     = "hit"
	feeRefresh = "refresh"
	feeStale   = "stale"
	feeDefault = "default"
)

// Metrics counts provider requests and fee cache lookups.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	feeLookups *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lit",
			Name:      "provider_requests_total",
			Help:      "Number of provider calls by outcome",
		}, []string{"provider", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lit",
			Name:      "provider_request_duration_seconds",
			Help:      "Time spent in a single provider call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		feeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lit",
			Name:      "fee_cache_lookups_total",
			Help:      "Fee cache reads by how they were served",
		}, []string{"class", "result"}),
	}

	reg.MustRegister(m.requests, m.duration, m.feeLookups)
	return m
}

func (m *Metrics) observeRequest(provider, op, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, op, status).Inc()
	m.duration.WithLabelValues(provider, op).Observe(elapsed.Seconds())
}

func (m *Metrics) observeFeeLookup(class FeeClass, result string) {
	if m == nil {
		return
	}
	m.feeLookups.WithLabelValues(class.String(), result).Inc()
}
