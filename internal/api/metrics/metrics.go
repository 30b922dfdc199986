// Package metrics defines the Prometheus collectors of the shoe inventory API.
// All collectors register with the default registry at package init and are
// exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every collector, including the HTTP request metrics
// installed by the router.
const Namespace = "shoe_inventory"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "disabled", "locked",
//     "throttled", "bad_request" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: "created", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts bearer tokens refused by the authentication
// middleware.
// Label:
//   - reason: "empty" or "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens.",
	},
	[]string{"reason"},
)

// PolicyDenialsTotal counts requests stopped by the access policy.
// Label:
//   - status: "401" or "403"
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of requests denied by the access policy.",
	},
	[]string{"status"},
)
