package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repliesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagepilot_replies_posted_total",
		Help: "Replies actually published to the platform.",
	})

	repliesSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagepilot_replies_simulated_total",
		Help: "Replies recorded in dry-run mode without a platform post.",
	})

	commentsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagepilot_comments_skipped_total",
		Help: "Comments passed over by the reply loop, by reason.",
	}, []string{"reason"})

	cycleErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagepilot_cycle_errors_total",
		Help: "Poll cycles aborted by an error.",
	})

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pagepilot_cycle_duration_seconds",
		Help:    "Histogram of full poll cycle duration in seconds.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})
)
