package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	committedHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "quorum",
		Name:      "committed_height",
		Help:      "Height of the last committed block.",
	})
	processedTxs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quorum",
		Name:      "abci_txs_total",
		Help:      "Transactions received over ABCI by phase and result code.",
	}, []string{"phase", "result"})
)

func init() {
	prometheus.MustRegister(committedHeight, processedTxs)
}

func countTx(phase string, code uint32) {
	result := "ok"
	if code != 0 {
		result = "error"
	}
	processedTxs.WithLabelValues(phase, result).Inc()
}
