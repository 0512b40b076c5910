package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_passes_total",
		Help: "Total number of engine evaluation passes",
	})

	notificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_notifications_total",
		Help: "Total number of reminder notifications dispatched",
	})

	rolloversTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_rollovers_total",
		Help: "Total number of recurring tasks rolled to their next occurrence",
	})

	patchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_patch_failures_total",
		Help: "Total number of engine patch writes rejected by the store",
	})
)
