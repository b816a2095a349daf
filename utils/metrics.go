package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BoardMetrics tracks domain counters exposed on /metrics.
type BoardMetrics struct {
	PostsCreated  prometheus.Counter
	ReportsTotal  *prometheus.CounterVec
	FeedbackTotal *prometheus.CounterVec
	FeedPages     prometheus.Counter
	Identities    prometheus.Counter
}

var boardMetrics = &BoardMetrics{
	PostsCreated: promauto.NewCounter(prometheus.CounterOpts{
		Name: "board_posts_created_total",
		Help: "Total number of posts created",
	}),
	ReportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_reports_total",
		Help: "Total number of report attempts by outcome",
	}, []string{"outcome"}),
	FeedbackTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_feedback_total",
		Help: "Total number of feedback submissions by category",
	}, []string{"category"}),
	FeedPages: promauto.NewCounter(prometheus.CounterOpts{
		Name: "board_feed_pages_total",
		Help: "Total number of feed pages served",
	}),
	Identities: promauto.NewCounter(prometheus.CounterOpts{
		Name: "board_identities_total",
		Help: "Total number of anonymous identities issued",
	}),
}

// Metrics returns the process-wide metrics set.
func Metrics() *BoardMetrics {
	return boardMetrics
}
