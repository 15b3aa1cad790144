package metrics

import "github.com/prometheus/client_golang/prometheus"

var dbCallLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_call_latency_ms",
		Help:    "Database call latency distribution in milliseconds.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	},
	[]string{"op", "success"},
)

func init() {
	register(dbCallLatencyMs)
}

func ObserveDBCall(op string, ms float64, success bool) {
	label := "true"
	if !success {
		label = "false"
	}
	dbCallLatencyMs.WithLabelValues(op, label).Observe(ms)
}
