package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notifications produced by kind (daily, approach, played).",
		},
		[]string{"kind", "outcome"},
	)

	sendFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_send_failures_total",
			Help: "Telegram send failures during notifier passes.",
		},
		[]string{"kind"},
	)
)

func init() {
	register(notifications, sendFailures)
}

func IncNotification(kind, outcome string) {
	notifications.WithLabelValues(kind, outcome).Inc()
}

func IncSendFailure(kind string) {
	sendFailures.WithLabelValues(kind).Inc()
}
