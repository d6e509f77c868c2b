// Package metrics defines and registers the custom Prometheus metrics for
// the account API. It is the single source of truth for metric names,
// labels, and help strings; collectors register themselves with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failures are never broken down
//     further, matching the API's generic rejection)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
// Label:
//   - mode: "self" (public registration) or "admin" (admin-driven)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by registration mode.",
	},
	[]string{"mode"},
)

// TokenRejectionsTotal counts bearer tokens that failed authentication.
// Label:
//   - reason: "invalid" (parse/signature/expiry) or "revoked" (denylisted)
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected during authentication.",
	},
	[]string{"reason"},
)

// ActiveUsers tracks the number of activity entries surviving the most
// recent sweep. Updated whenever the active-user endpoints run.
var ActiveUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_users",
		Help:      "Number of users seen within the inactivity window at the last sweep.",
	},
)
