package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeConfirmed = "confirmed"
	OutcomeReverted  = "reverted"
	OutcomeRejected  = "rejected"
	OutcomeStale     = "stale"
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeSkipped   = "skipped"
)

var (
	// MutationsTotal counts optimistic mutations by kind and terminal outcome.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "communityclient_mutations_total",
			Help: "Optimistic mutations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	PageLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "communityclient_page_load_duration_seconds",
			Help:    "Paginator page fetch latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "communityclient_api_request_duration_seconds",
			Help:    "Latency of calls to the community API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)
)
