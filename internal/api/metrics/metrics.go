// Package metrics defines and registers the custom Prometheus metrics of the
// taskboard service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDecisionsTotal counts role guard outcomes.
// Labels:
//   - required: the minimum role checked (e.g. "ADMIN")
//   - outcome: "allowed", "denied" or "unauthenticated"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of role guard decisions.",
	},
	[]string{"required", "outcome"},
)

// EdgeRejectionsTotal counts requests turned away by the edge filter.
// Label:
//   - reason: "unauthenticated", "forbidden" or "authenticated"
var EdgeRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edge_rejections_total",
		Help:      "Total number of requests redirected or rejected by the edge filter.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts credential checks.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminActionsTotal counts admin mutations.
// Labels:
//   - action: "create", "update" or "delete"
//   - result: "ok", "forbidden", "self" or "error"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin user mutations, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodosCreatedTotal counts newly created todos.
// Label:
//   - priority: "LOW", "MEDIUM" or "HIGH"
var TodosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created, by priority.",
	},
	[]string{"priority"},
)

// UploadBytes measures the size of accepted uploads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of accepted image uploads.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6), // 16KiB .. 16MiB
	},
)
