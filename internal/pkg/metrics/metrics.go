// Package metrics defines and registers all custom Prometheus metrics for the
// auth shell. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto; the /metrics endpoint serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authshell"

// Label values for the operation label.
const (
	OpLogin  = "login"
	OpSignup = "signup"
	OpLogout = "logout"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts completed auth operations.
// Labels:
//   - operation: "login", "signup" or "logout"
//   - result: "success" or the failure reason (e.g. "user_not_found")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of auth operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// AuthOperationDuration measures an auth operation end to end, including the
// emulated network latency.
// Label:
//   - operation: "login", "signup" or "logout"
var AuthOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_operation_duration_seconds",
		Help:      "Duration of auth operations including emulated latency.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// SessionAuthenticated is 1 while a user is logged in, 0 otherwise.
var SessionAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_authenticated",
		Help:      "Whether a user session is currently active (1) or not (0).",
	},
)

// ── Validation metrics ────────────────────────────────────────────────────────

// ValidationFailuresTotal counts rejected form fields.
// Label:
//   - field: "name", "email", "password" or "confirm_password"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of form fields rejected by validation.",
	},
	[]string{"field"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageErrorsTotal counts persistence failures seen by the session store.
// Label:
//   - operation: e.g. "load_current_user", "append_registered_user"
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of key-value persistence failures.",
	},
	[]string{"operation"},
)

// WriterQueueDepth tracks the number of write jobs waiting in each writer worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WriterQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "writer_queue_depth",
		Help:      "Current number of write jobs pending in each writer worker channel.",
	},
	[]string{"worker_id"},
)
