// Package metrics defines and registers the custom Prometheus metrics of the
// student registration service. Metrics are registered with the default
// registry on package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registration"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "missing_field", "mismatch", "weak_password", "duplicate", "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts logouts that revoked a session token.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of session tokens revoked by logout.",
	},
)

// ── Student metrics ───────────────────────────────────────────────────────────

// StudentsUpsertedTotal counts successful registrations.
// Label:
//   - outcome: "created" (new roll number) or "merged" (existing roll number)
var StudentsUpsertedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "students_upserted_total",
		Help:      "Total number of student registrations, by outcome.",
	},
	[]string{"outcome"},
)

// StudentUpsertDuration measures the store round trip of an upsert-merge.
// Label:
//   - outcome: "created", "merged" or "error"
var StudentUpsertDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "student_upsert_duration_seconds",
		Help:      "Duration of the student upsert-merge store operation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
