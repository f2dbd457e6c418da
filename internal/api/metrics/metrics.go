// Package metrics defines and registers all custom Prometheus metrics for
// the room scheduler API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roomscheduler"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordUpdatesTotal counts completed self-service password changes.
var PasswordUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_updates_total",
		Help:      "Total number of successful password updates.",
	},
)

// AuthzDecisionsTotal counts policy evaluations at the HTTP boundary.
// Labels:
//   - policy: the evaluated policy name (e.g. "admin_only")
//   - result: "allowed" or "denied"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization policy decisions, by policy and result.",
	},
	[]string{"policy", "result"},
)

// ── Reservation metrics ───────────────────────────────────────────────────────

// ReservationsCreatedTotal counts successfully created reservations.
var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations created.",
	},
)

// ReservationConflictsTotal counts bookings rejected by the overlap rule.
var ReservationConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_conflicts_total",
		Help:      "Total number of reservations rejected because the room was already booked.",
	},
)
