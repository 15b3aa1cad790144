package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	botCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of bot commands by command and outcome.",
		},
		[]string{"command", "outcome"},
	)

	botRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_rate_limited_total",
			Help: "Count of updates dropped by the per-chat rate limiter.",
		},
	)
)

func init() {
	register(botCommands, botRateLimited)
}

// IncCommand records one handled command; outcome is "ok", "error" or
// "rejected".
func IncCommand(command, outcome string) {
	botCommands.WithLabelValues(command, outcome).Inc()
}

func IncRateLimited() {
	botRateLimited.Inc()
}
