package multisig

import "github.com/prometheus/client_golang/prometheus"

var executionsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "executions_total",
		Help:      "Number of wallet transaction executions by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(executionsCounter)
}
