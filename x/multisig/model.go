package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	walletBucketName      = "wallet"
	transactionBucketName = "wallet_tx"
)

// Wallet is the state of a MultiSignatureWallet instance. It is stored
// under the instance address.
type Wallet struct {
	Metadata quorum.Metadata
	Owners   []quorum.Address
	// Required is the number of confirmations a transaction needs.
	Required uint32
	// TransactionCount is the number of submitted transactions and the ID
	// of the next one.
	TransactionCount uint64
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.Append(errs, validateOwners(w.Owners, w.Required))
	return errs
}

// IsOwner returns true if given address is one of the wallet owners.
func (w *Wallet) IsOwner(addr quorum.Address) bool {
	for _, o := range w.Owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// validateOwners checks the owner list and the requirement, without the
// configurable owner count limit.
func validateOwners(owners []quorum.Address, required uint32) error {
	var errs error
	if len(owners) == 0 {
		errs = errors.AppendField(errs, "Owners", errors.Wrap(ErrInvalidRequirement, "no owners"))
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			errs = errors.AppendField(errs, "Owners", errors.Wrapf(err, "owner %d", i))
			continue
		}
		for _, prev := range owners[:i] {
			if prev.Equals(o) {
				errs = errors.AppendField(errs, "Owners", errors.Wrapf(errors.ErrDuplicate, "owner %d", i))
				break
			}
		}
	}
	switch {
	case required == 0:
		errs = errors.AppendField(errs, "Required", errors.Wrap(ErrInvalidRequirement, "must be greater than zero"))
	case int(required) > len(owners):
		errs = errors.AppendField(errs, "Required", errors.Wrapf(ErrInvalidRequirement, "%d of %d owners", required, len(owners)))
	}
	return errs
}

// Transaction is a value transfer, optionally with a message, proposed by
// one of the wallet owners.
type Transaction struct {
	Metadata    quorum.Metadata
	Wallet      quorum.Address
	ID          uint64
	Destination quorum.Address
	Value       coin.Amount
	// Data is the codec encoded message delivered on execution.
	Data     []byte
	Executed bool
	// Confirmations lists owners that confirmed, in confirmation order.
	Confirmations []quorum.Address
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", t.Wallet.Validate())
	errs = errors.AppendField(errs, "Destination", t.Destination.Validate())
	errs = errors.AppendField(errs, "Value", t.Value.Validate())
	for i, c := range t.Confirmations {
		if err := c.Validate(); err != nil {
			errs = errors.AppendField(errs, "Confirmations", errors.Wrapf(err, "confirmation %d", i))
		}
	}
	return errs
}

// IsConfirmedBy returns true if given owner confirmed the transaction.
func (t *Transaction) IsConfirmedBy(owner quorum.Address) bool {
	for _, c := range t.Confirmations {
		if c.Equals(owner) {
			return true
		}
	}
	return false
}

// transactionKey is the wallet address followed by the big endian ID.
func transactionKey(wallet quorum.Address, id uint64) []byte {
	key := make([]byte, 0, len(wallet)+8)
	key = append(key, wallet...)
	return append(key, orm.EncodeSequence(id)...)
}

// NewWalletBucket returns the bucket of wallets keyed by the instance
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(walletBucketName, &Wallet{})
}

// NewTransactionBucket returns the bucket of wallet transactions, keyed by
// the wallet address and the transaction ID.
func NewTransactionBucket() orm.ModelBucket {
	return orm.NewModelBucket(transactionBucketName, &Transaction{},
		orm.WithIndex("wallet", walletIndexer, false),
	)
}

func walletIndexer(m orm.Model) ([]byte, error) {
	t, ok := m.(*Transaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return t.Wallet, nil
}
