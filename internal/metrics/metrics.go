package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParseRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_parse_requests_total",
			Help: "Total number of classified messages by intent and transport",
		},
		[]string{"intent", "transport"},
	)

	ParseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_parse_errors_total",
			Help: "Total number of failed parse requests",
		},
		[]string{"reason"},
	)

	ParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlu_parse_duration_seconds",
			Help:    "Duration of message classification in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"transport"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"result"}, // hit, miss, error
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nlu_websocket_sessions",
			Help: "Number of open websocket sessions",
		},
	)
)
