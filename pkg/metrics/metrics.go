package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's domain metrics. HTTP request metrics
// live in the router middleware.
type Metrics struct {
	ClinicViews        prometheus.Counter
	ContactSubmissions prometheus.Counter
	ReviewsSubmitted   prometheus.Counter
	ReviewsModerated   *prometheus.CounterVec

	ViewEventsPublished prometheus.Counter
	ViewEventsFailed    prometheus.Counter
	StatsFlushes        prometheus.Counter
	StatsFlushLatency   prometheus.Histogram

	DatabaseOperations *prometheus.CounterVec
}

// New creates and registers all application metrics.
func New(namespace string) *Metrics {
	return &Metrics{
		ClinicViews: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clinic_views_total",
			Help:      "Total number of clinic detail fetches",
		}),
		ContactSubmissions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Total number of accepted contact form submissions",
		}),
		ReviewsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Total number of submitted clinic reviews",
		}),
		ReviewsModerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_moderated_total",
			Help:      "Total number of moderated reviews by outcome",
		}, []string{"outcome"}),
		ViewEventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_events_published_total",
			Help:      "Total number of clinic view events published to the broker",
		}),
		ViewEventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_events_failed_total",
			Help:      "Total number of clinic view events that failed to publish",
		}),
		StatsFlushes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_flushes_total",
			Help:      "Total number of stats worker flushes",
		}),
		StatsFlushLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stats_flush_duration_seconds",
			Help:      "Time spent flushing aggregated view stats",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
	}
}
