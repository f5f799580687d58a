package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/artifact"
)

// Decorator authorizes the wallets a transaction acts for. A wallet is
// authorized when at least the required number of its owners signed the
// transaction.
type Decorator struct {
	auth x.Authenticator
}

var _ quorum.Decorator = Decorator{}

// NewDecorator returns a default multisig decorator
func NewDecorator(auth x.Authenticator) Decorator {
	return Decorator{auth: auth}
}

// Check enforces wallet authorization before calling down the stack
func (d Decorator) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	ctx, err := d.withWallets(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver enforces wallet authorization before calling down the stack
func (d Decorator) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	ctx, err := d.withWallets(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withWallets(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx) (quorum.Context, error) {
	mtx, ok := tx.(MultiSigTx)
	if !ok {
		return ctx, nil
	}
	for _, addr := range mtx.GetMultisig() {
		// check if we already have it
		if d.auth.HasAddress(ctx, addr) {
			continue
		}
		w, err := LoadWallet(store, addr)
		if err != nil {
			return nil, err
		}
		if x.CountAddresses(ctx, d.auth, w.Owners) < int(w.Required) {
			return nil, errors.Wrapf(ErrUnauthorizedMultiSig, "wallet %s", addr)
		}
		inst, err := artifact.LoadInstance(store, addr)
		if err != nil {
			return nil, errors.Wrap(err, "wallet instance")
		}
		ctx = withWallet(ctx, inst.Condition())
	}
	return ctx, nil
}
