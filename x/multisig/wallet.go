package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// LoadWallet returns the wallet deployed under given address.
func LoadWallet(db quorum.ReadOnlyKVStore, wallet quorum.Address) (*Wallet, error) {
	var w Wallet
	if err := NewWalletBucket().One(db, wallet, &w); err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	return &w, nil
}

// LoadTransaction returns a single transaction of the wallet.
func LoadTransaction(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) (*Transaction, error) {
	var t Transaction
	if err := NewTransactionBucket().One(db, transactionKey(wallet, id), &t); err != nil {
		return nil, errors.Wrapf(err, "transaction %d", id)
	}
	return &t, nil
}

// Owners returns the owners of the wallet.
func Owners(db quorum.ReadOnlyKVStore, wallet quorum.Address) ([]quorum.Address, error) {
	w, err := LoadWallet(db, wallet)
	if err != nil {
		return nil, err
	}
	return w.Owners, nil
}

// Confirmations returns the owners that confirmed the transaction, ordered
// as in the owner list.
func Confirmations(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) ([]quorum.Address, error) {
	w, err := LoadWallet(db, wallet)
	if err != nil {
		return nil, err
	}
	t, err := LoadTransaction(db, wallet, id)
	if err != nil {
		return nil, err
	}
	return confirmedOwners(w, t), nil
}

func confirmedOwners(w *Wallet, t *Transaction) []quorum.Address {
	var res []quorum.Address
	for _, o := range w.Owners {
		if t.IsConfirmedBy(o) {
			res = append(res, o)
		}
	}
	return res
}

// ConfirmationCount returns the number of owners that confirmed the
// transaction.
func ConfirmationCount(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) (int, error) {
	c, err := Confirmations(db, wallet, id)
	if err != nil {
		return 0, err
	}
	return len(c), nil
}

// IsConfirmed returns true if the transaction has the required number of
// confirmations.
func IsConfirmed(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) (bool, error) {
	w, err := LoadWallet(db, wallet)
	if err != nil {
		return false, err
	}
	t, err := LoadTransaction(db, wallet, id)
	if err != nil {
		return false, err
	}
	return isConfirmed(w, t), nil
}

func isConfirmed(w *Wallet, t *Transaction) bool {
	return len(confirmedOwners(w, t)) >= int(w.Required)
}

// TransactionCount returns the number of transactions of the wallet,
// counting pending and executed ones as requested.
func TransactionCount(db quorum.ReadOnlyKVStore, wallet quorum.Address, pending, executed bool) (uint64, error) {
	var n uint64
	err := eachTransaction(db, wallet, func(t *Transaction) error {
		if pending && !t.Executed || executed && t.Executed {
			n++
		}
		return nil
	})
	return n, err
}

// TransactionIDs returns the IDs of the wallet transactions, filtered by
// state, that are in the [from, to) range of the filtered result.
func TransactionIDs(db quorum.ReadOnlyKVStore, wallet quorum.Address, from, to uint64, pending, executed bool) ([]uint64, error) {
	if from > to {
		return nil, errors.Wrapf(errors.ErrInput, "invalid range %d - %d", from, to)
	}
	var (
		ids []uint64
		n   uint64
	)
	err := eachTransaction(db, wallet, func(t *Transaction) error {
		if pending && !t.Executed || executed && t.Executed {
			if n >= from && n < to {
				ids = append(ids, t.ID)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// eachTransaction calls fn for every transaction of the wallet, ordered by
// ID.
func eachTransaction(db quorum.ReadOnlyKVStore, wallet quorum.Address, fn func(*Transaction) error) error {
	if err := wallet.Validate(); err != nil {
		return errors.Wrap(err, "wallet")
	}
	it, err := NewTransactionBucket().PrefixScan(db, wallet, false)
	if err != nil {
		return err
	}
	defer it.Release()

	for {
		var t Transaction
		switch _, err := it.LoadNext(&t); {
		case err == nil:
			if err := fn(&t); err != nil {
				return err
			}
		case errors.ErrIteratorDone.Is(err):
			return nil
		default:
			return err
		}
	}
}
