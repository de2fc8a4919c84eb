// Package metrics exposes Prometheus collectors for executed statements.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "likesql"

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// StatementMetrics counts and times statements run by an ExecSink.
type StatementMetrics struct {
	statementsTotal   *prometheus.CounterVec
	statementDuration *prometheus.HistogramVec
	cacheHits         prometheus.CounterFunc
	cacheMisses       prometheus.CounterFunc
}

// CacheStatsFunc reports prepared statement cache hits and misses.
type CacheStatsFunc func() (hits, misses uint64)

// NewStatementMetrics creates the collectors and registers them on reg.
// A nil reg registers on prometheus.DefaultRegisterer. cacheStats may be
// nil, in which case no cache counters are exported.
func NewStatementMetrics(reg prometheus.Registerer, cacheStats CacheStatsFunc) (*StatementMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &StatementMetrics{
		statementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "statements_total",
				Help:      "Total number of executed statements by verb and status",
			},
			[]string{"verb", "status"},
		),
		statementDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "statement_duration_seconds",
				Help:      "Statement execution time in seconds by verb",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"verb"},
		),
	}

	collectors := []prometheus.Collector{m.statementsTotal, m.statementDuration}

	if cacheStats != nil {
		m.cacheHits = prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stmt_cache_hits_total",
			Help:      "Prepared statement cache hits",
		}, func() float64 {
			hits, _ := cacheStats()
			return float64(hits)
		})
		m.cacheMisses = prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stmt_cache_misses_total",
			Help:      "Prepared statement cache misses",
		}, func() float64 {
			_, misses := cacheStats()
			return float64(misses)
		})
		collectors = append(collectors, m.cacheHits, m.cacheMisses)
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one executed statement.
func (m *StatementMetrics) Observe(verb string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.statementsTotal.WithLabelValues(verb, status).Inc()
	m.statementDuration.WithLabelValues(verb).Observe(elapsed.Seconds())
}
