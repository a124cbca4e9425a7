package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventradar"

// Registry is the process-wide Prometheus registry for all metrics.
var Registry = prometheus.NewRegistry()

// EventDeletions counts completed event deletions by the path that removed the tree.
// mode: bulk | fallback
var EventDeletions = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_deletions_total",
		Help:      "Total number of events deleted, by deletion mode",
	},
	[]string{"mode"},
)

// BestEffortFailures counts swallowed sub-operation failures.
var BestEffortFailures = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "best_effort_failures_total",
		Help:      "Total number of best-effort sub-operations that failed and were skipped",
	},
	[]string{"operation"},
)

// NotificationsPublished counts announcement push notifications.
// result: sent | failed | skipped
var NotificationsPublished = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of announcement notifications, by result",
	},
	[]string{"result"},
)

// HTTPRequests counts callable requests by route and status code.
var HTTPRequests = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration observes request latency in seconds.
var HTTPRequestDuration = promauto.With(Registry).NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
