// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Total number of wizard submissions by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registration_submission_duration_seconds",
			Help:    "Duration of the sink round trip in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	SubmissionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registration_submissions_in_flight",
			Help: "Number of submissions currently awaiting the sink",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_validation_failures_total",
			Help: "Total number of failed validation passes by scope",
		},
		[]string{"scope"},
	)

	TabTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_tab_transitions_total",
			Help: "Total number of wizard tab changes",
		},
		[]string{"from", "to"},
	)

	SinkDocumentsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_sink_documents_total",
			Help: "Total number of documents received by the sink by status",
		},
		[]string{"status"},
	)
)

// Submission outcome labels.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
	OutcomeInternal    = "internal_error"
)
