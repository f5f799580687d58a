package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Recovery turns a panic raised by any handler further down the stack into
// an ErrPanic error. The transaction fails, the node keeps running.
type Recovery struct{}

var _ quorum.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (_ *quorum.CheckResult, err error) {
	defer logPanic(ctx, "check", &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (_ *quorum.DeliverResult, err error) {
	defer logPanic(ctx, "deliver", &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic reports recovered panics. It must run after errors.Recover.
func logPanic(ctx quorum.Context, phase string, err *error) {
	if errors.ErrPanic.Is(*err) {
		quorum.GetLogger(ctx).Error("Recovered from panic", "phase", phase, "err", *err)
	}
}
