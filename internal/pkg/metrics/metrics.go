// Package metrics provides the Prometheus collector for the order workflow
// service. Counters cover the workflow lifecycle (runs started, steps
// completed, token rejections) and the audit pipeline (events published,
// snapshots archived).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal *prometheus.CounterVec

	RunsStartedTotal    prometheus.Counter
	StepsCompletedTotal *prometheus.CounterVec
	TokenMismatchTotal  prometheus.Counter
	RunsCancelledTotal  prometheus.Counter

	EventsPublishedTotal   prometheus.Counter
	EventPublishFailures   prometheus.Counter
	SnapshotsArchivedTotal prometheus.Counter
	ArchiveFailures        prometheus.Counter
}

// NewCollector registers all collectors against reg. Pass
// prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	factory := func(opts prometheus.CounterOpts) prometheus.Counter {
		c := prometheus.NewCounter(opts)
		reg.MustRegister(c)
		return c
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by method, path, and status code.",
	}, []string{"method", "path", "status"})
	reg.MustRegister(requests)

	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Subsystem: "workflow",
		Name:      "steps_completed_total",
		Help:      "Total completed workflow steps by resulting status.",
	}, []string{"status"})
	reg.MustRegister(steps)

	return &Collector{
		RequestsTotal:       requests,
		StepsCompletedTotal: steps,

		RunsStartedTotal: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "workflow",
			Name:      "runs_started_total",
			Help:      "Total workflow runs started.",
		}),

		TokenMismatchTotal: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "workflow",
			Name:      "token_mismatch_total",
			Help:      "Signals rejected because the resumption token was stale or unknown.",
		}),

		RunsCancelledTotal: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "workflow",
			Name:      "runs_cancelled_total",
			Help:      "Total workflow runs cancelled.",
		}),

		EventsPublishedTotal: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "events_published_total",
			Help:      "Finalized-order events published to the event bus.",
		}),

		EventPublishFailures: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "event_publish_failures_total",
			Help:      "Finalized-order event publish failures. Best-effort; the order record write is unaffected.",
		}),

		SnapshotsArchivedTotal: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "snapshots_archived_total",
			Help:      "Order snapshots written to archival storage.",
		}),

		ArchiveFailures: factory(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "archive_failures_total",
			Help:      "Archive writes that failed after retry.",
		}),
	}
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
