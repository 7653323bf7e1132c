// Package metrics defines the Prometheus metrics emitted by the HTTP layer.
// Metrics register with the default registry via promauto, so importing the
// package is enough. The activity pipeline's metrics live with the queue
// dispatcher, which owns them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todoapi"

// TodoOperationsTotal counts todo operations that reached the service layer.
// Label:
//   - operation: "create", "read", "update", "share", "delete"
var TodoOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todo_operations_total",
		Help:      "Total number of todo operations, by operation kind.",
	},
	[]string{"operation"},
)

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - kind: "register" or "login"
//   - result: "ok" or "failed"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - bucket: the limiter bucket ("api" or "auth")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"bucket"},
)
