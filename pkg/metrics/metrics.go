package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	CastQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecast_cast_queries_total",
			Help: "Count of cast queries by plan and outcome",
		},
		[]string{"plan", "outcome"},
	)
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviecast_store_call_duration_seconds",
			Help:    "Time taken by a single store call",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"store", "table"},
	)
	StoreFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecast_store_failures_total",
			Help: "Count of failed store calls",
		},
		[]string{"store", "table"},
	)
)

var once sync.Once

// Init registers the collectors with the default registry. It is safe to
// call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			CastQueries,
			StoreDuration,
			StoreFailures,
		)
	})
}
