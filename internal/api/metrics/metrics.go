// Package metrics defines and registers the custom Prometheus metrics of the
// salon booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salon"

// Label values shared by handlers and middleware.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
	ResultEmpty    = "empty"
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (unknown email and wrong password are not distinguished)
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRegistrationsTotal counts self-registrations.
// Label:
//   - result: "success", "conflict" (email taken) or "failure"
var AuthRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// AuthTokenRejectionsTotal counts requests refused by the auth middleware.
// Label:
//   - reason: "missing", "expired", "invalid" or "revoked"
var AuthTokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_token_rejections_total",
		Help:      "Total number of requests rejected for a missing or unusable token.",
	},
	[]string{"reason"},
)

// AuthzDenialsTotal counts authenticated requests refused by the role gate.
// Label:
//   - required_role: the minimum role of the route
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied for insufficient role.",
	},
	[]string{"required_role"},
)

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsCreatedTotal counts new bookings.
// Label:
//   - booking: "customer" or "guest"
var AppointmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments created, by booking kind.",
	},
	[]string{"booking"},
)

// AppointmentStatusUpdatesTotal counts successful status changes.
// Label:
//   - status: the status written
var AppointmentStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_status_updates_total",
		Help:      "Total number of appointment status updates, by resulting status.",
	},
	[]string{"status"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsBackfillFailuresTotal counts payments stored without the matching
// appointment link.
var PaymentsBackfillFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_backfill_failures_total",
		Help:      "Total number of payments whose appointment back-reference could not be written.",
	},
)

// PaymentsMonthlyReportsTotal counts monthly aggregation requests.
// Label:
//   - result: "success", "empty" (no payments in month) or "failure"
var PaymentsMonthlyReportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_monthly_reports_total",
		Help:      "Total number of monthly payment reports, by result.",
	},
	[]string{"result"},
)
