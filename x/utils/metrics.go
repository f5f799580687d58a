package utils

import (
	"github.com/iov-one/quorum"
	"github.com/prometheus/client_golang/prometheus"
)

var txCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "quorum",
		Name:      "transactions_total",
		Help:      "Processed transactions by phase, message path and outcome.",
	},
	[]string{"phase", "path", "outcome"},
)

func init() {
	prometheus.MustRegister(txCounter)
}

// Metrics counts processed transactions.
type Metrics struct{}

var _ quorum.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator
func NewMetrics() Metrics {
	return Metrics{}
}

func (Metrics) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	res, err := next.Check(ctx, db, tx)
	countTx("check", tx, err)
	return res, err
}

func (Metrics) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	countTx("deliver", tx, err)
	return res, err
}

func countTx(phase string, tx quorum.Tx, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	txCounter.WithLabelValues(phase, quorum.GetPath(tx), outcome).Inc()
}
