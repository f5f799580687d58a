package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Metadata quorum.Metadata
	Balance  coin.Amount
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.AppendField(errs, "Balance", w.Balance.Validate())
	return errs
}

// NewWallet returns a wallet holding given balance.
func NewWallet(balance coin.Amount) *Wallet {
	return &Wallet{
		Metadata: quorum.Metadata{Schema: 1},
		Balance:  balance,
	}
}

// NewBucket returns a bucket of wallets keyed by the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
