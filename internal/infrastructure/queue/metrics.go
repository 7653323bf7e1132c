package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "todoapi"

// activityRecordedTotal counts audit events written to the activity feed.
// Label:
//   - action: "created", "updated", "shared", "deleted"
var activityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity events recorded, by action.",
	},
	[]string{"action"},
)

// activityErrorsTotal counts audit events that could not be recorded.
// Label:
//   - reason: "queue_full" or "record_failed"
var activityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events lost or failed, by reason.",
	},
	[]string{"reason"},
)

// activityQueueDepth tracks the events waiting in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var activityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
