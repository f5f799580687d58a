package artifact

import "github.com/prometheus/client_golang/prometheus"

var deploymentsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "artifact",
		Name:      "deployments_total",
		Help:      "Number of deployed contract instances.",
	},
	[]string{"artifact"},
)

func init() {
	prometheus.MustRegister(deploymentsCounter)
}
