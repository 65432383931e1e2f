// Package metrics defines and registers all custom Prometheus metrics for the
// referral API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init via promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "referral"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDecisionsTotal counts policy decisions taken by the route middleware.
// Labels:
//   - action: the policy action (e.g. "delete_candidate")
//   - decision: "allow", "deny" or "unauthenticated"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of access policy decisions, by action and outcome.",
	},
	[]string{"action", "decision"},
)

// ── Candidate metrics ─────────────────────────────────────────────────────────

// CandidatesCreatedTotal counts newly created candidates.
// Label:
//   - role: role of the referrer ("admin" or "recruiter")
var CandidatesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidates_created_total",
		Help:      "Total number of candidates referred, by referrer role.",
	},
	[]string{"role"},
)

// CandidateStatusChangesTotal counts successful status updates.
// Label:
//   - status: the new status ("Pending", "Reviewed", "Hired")
var CandidateStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidate_status_changes_total",
		Help:      "Total number of candidate status changes, by new status.",
	},
	[]string{"status"},
)

// IdempotentReplaysTotal counts create requests answered from an earlier
// Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of candidate creations replayed from an idempotency key.",
	},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityEventsTotal counts activity events by outcome.
// Labels:
//   - kind: "created", "status_changed" or "deleted"
//   - result: "recorded", "failed" or "dropped"
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of candidate activity events, by kind and outcome.",
	},
	[]string{"kind", "result"},
)

// ActivityRecordDuration measures how long persisting one activity event takes.
var ActivityRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_record_duration_seconds",
		Help:      "Duration of activity event persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
