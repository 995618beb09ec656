// Package metrics defines and registers all custom Prometheus metrics for
// the RoadWatch API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roadwatch"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register" or "login"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"action", "outcome"},
)

// PolicyDenialsTotal counts authorization denials surfaced to callers.
// Labels:
//   - action: the attempted operation (e.g. "create", "delete", "update_status")
//   - reason: "unauthenticated" or "forbidden"
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of denied report operations, by action and reason.",
	},
	[]string{"action", "reason"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsCreatedTotal counts successfully created reports.
var ReportsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of road-damage reports created.",
	},
)

// ReportStatusUpdatesTotal counts status transitions applied by admins.
// Label:
//   - status: the new status value (e.g. "Resolved")
var ReportStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_status_updates_total",
		Help:      "Total number of report status updates, by new status.",
	},
	[]string{"status"},
)

// ReportsDeletedTotal counts deleted reports.
// Label:
//   - actor: "owner" or "admin"
var ReportsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_deleted_total",
		Help:      "Total number of reports deleted, by deleting actor.",
	},
	[]string{"actor"},
)
