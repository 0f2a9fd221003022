// Package metrics declares the dashboard's Prometheus collectors. HTTP request
// metrics come from echoprometheus; everything here is domain level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginAttemptsTotal counts POST /login outcomes.
// Label:
//   - result: "success", "invalid", "error" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts sessions ended through logout.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked by logout.",
	},
)

// InvoiceMutationsTotal counts successful invoice writes.
// Label:
//   - action: "create", "update" or "delete"
var InvoiceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_mutations_total",
		Help:      "Total number of invoices created, updated or deleted.",
	},
	[]string{"action"},
)

// StoreFailuresTotal counts store failures surfaced to clients.
// Label:
//   - operation: the failed operation, e.g. "fetch invoices"
var StoreFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_failures_total",
		Help:      "Total number of requests that failed because a backing store was unavailable.",
	},
	[]string{"operation"},
)

// GateDecisionsTotal counts route-gate outcomes.
// Label:
//   - decision: "allow", "login_redirect" or "home_redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route gate decisions, by outcome.",
	},
	[]string{"decision"},
)
