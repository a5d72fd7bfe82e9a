package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IncidentsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ers_incidents_submitted_total",
		Help: "Total number of incidents durably created by the submission pipeline.",
	})

	SubmissionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ers_submission_failures_total",
		Help: "Total number of failed submissions, labelled by failure kind.",
	}, []string{"kind"})

	GeocodeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ers_geocode_fallbacks_total",
		Help: "Total number of submissions persisted with the fallback place name.",
	})

	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ers_feed_subscribers",
		Help: "Current number of live feed subscribers.",
	})

	FeedSnapshotsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ers_feed_snapshots_delivered_total",
		Help: "Total number of feed snapshots pushed to subscribers.",
	})

	SubmissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ers_submission_duration_seconds",
		Help:    "End-to-end submission latency in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	})
)
