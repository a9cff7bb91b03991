package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Circuit states as exported by the upstream_circuit_state gauge.
const (
	CircuitClosed   = 0
	CircuitHalfOpen = 1
	CircuitOpen     = 2
)

// RateMetrics holds the collectors for exchange rate resolution.
// A nil *RateMetrics is valid and records nothing.
type RateMetrics struct {
	CacheLookupsTotal     *prometheus.CounterVec
	TreasuryQueriesTotal  *prometheus.CounterVec
	TreasuryQueryDuration *prometheus.HistogramVec
	MalformedRecordsTotal prometheus.Counter
	UpstreamRetriesTotal  prometheus.Counter
	UpstreamCircuitState  prometheus.Gauge
	ConversionsTotal      *prometheus.CounterVec
}

// NewRateMetrics registers the collectors with reg.
func NewRateMetrics(reg prometheus.Registerer) *RateMetrics {
	factory := promauto.With(reg)

	return &RateMetrics{
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Exchange rate cache lookups by result",
			},
			[]string{"result"},
		),
		TreasuryQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_queries_total",
				Help: "Queries sent to the Treasury rates of exchange API by query shape and outcome",
			},
			[]string{"shape", "outcome"},
		),
		TreasuryQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treasury_query_duration_seconds",
				Help:    "Latency of Treasury API queries including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"shape"},
		),
		MalformedRecordsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "treasury_malformed_records_total",
				Help: "Treasury records discarded because a rate or date failed to parse",
			},
		),
		UpstreamRetriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "upstream_retries_total",
				Help: "Retries of transient upstream failures",
			},
		),
		UpstreamCircuitState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "upstream_circuit_state",
				Help: "Circuit breaker state for the rate source (0 closed, 1 half-open, 2 open)",
			},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "purchase_conversions_total",
				Help: "Purchase conversion requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *RateMetrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues("hit").Inc()
}

func (m *RateMetrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// ObserveQuery records one logical Treasury query.
func (m *RateMetrics) ObserveQuery(shape, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.TreasuryQueriesTotal.WithLabelValues(shape, outcome).Inc()
	m.TreasuryQueryDuration.WithLabelValues(shape).Observe(seconds)
}

func (m *RateMetrics) MalformedRecord() {
	if m == nil {
		return
	}
	m.MalformedRecordsTotal.Inc()
}

func (m *RateMetrics) Retry() {
	if m == nil {
		return
	}
	m.UpstreamRetriesTotal.Inc()
}

func (m *RateMetrics) SetCircuitState(state int) {
	if m == nil {
		return
	}
	m.UpstreamCircuitState.Set(float64(state))
}

func (m *RateMetrics) Conversion(outcome string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}
